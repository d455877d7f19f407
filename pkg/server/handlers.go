package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/sanitize"
)

// Outcome is the JSON body returned to clients that ask for JSON.
type Outcome struct {
	Form         string            `json:"form"`
	State        string            `json:"state"`
	Errors       map[string]string `json:"errors,omitempty"`
	Cued         []string          `json:"cued,omitempty"`
	Notice       string            `json:"notice,omitempty"`
	SubmissionID string            `json:"submissionId,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.writePage(w, r, http.StatusOK,
		render.Section{Form: s.contact},
		render.Section{Form: s.newsletter},
	)
}

func (s *Server) handleExtraForm(w http.ResponseWriter, r *http.Request) {
	form, ok := s.extra[chi.URLParam(r, "id")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.writePage(w, r, http.StatusOK, render.Section{Form: form, Options: render.RenderOptions{Action: r.URL.Path}})
}

func (s *Server) handleExtraSubmit(w http.ResponseWriter, r *http.Request) {
	form, ok := s.extra[chi.URLParam(r, "id")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.submit(w, r, form, func(sec render.Section) []render.Section {
		sec.Options.Action = r.URL.Path
		return []render.Section{sec}
	})
}

func (s *Server) handleSubmit(form func() model.FormModel) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.submit(w, r, form(), s.landingSections)
	}
}

// landingSections places the submitted form next to the other landing form.
func (s *Server) landingSections(submitted render.Section) []render.Section {
	if submitted.Form.Kind == model.FormKindNewsletter {
		return []render.Section{{Form: s.contact}, submitted}
	}
	return []render.Section{submitted, {Form: s.newsletter}}
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request, form model.FormModel, layout func(render.Section) []render.Section) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	reqID := middleware.GetReqID(r.Context())
	logger := s.logger.With(zap.String("request_id", reqID))

	page := controller.NewMemoryForm(form)
	for _, f := range form.Fields {
		if err := page.Fill(f.Name, sanitize.Text(r.PostForm.Get(f.Name))); err != nil {
			logger.Error("fill form", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	sched := &stepScheduler{}
	opts := append(s.cfg.ControllerOptions(form.Kind),
		controller.WithScheduler(sched),
		controller.WithLogger(logger),
	)
	if reqID != "" {
		opts = append(opts, controller.WithIDGenerator(func() string { return reqID }))
	}
	ctrl, err := controller.New(form.Kind, page.UI(), opts...)
	if err != nil {
		logger.Error("build controller", zap.String("form", form.ID), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	state := ctrl.Submit()
	if state == controller.StatePending {
		sched.step()
		state = ctrl.State()
	}

	status := http.StatusOK
	if state != controller.StateSucceeded {
		status = http.StatusUnprocessableEntity
	}
	section := render.Section{Form: form, Options: liveOptions(page)}

	if wantsJSON(r) {
		out := Outcome{
			Form:   form.ID,
			State:  state.String(),
			Errors: page.Errors(),
			Cued:   cuedFields(page),
			Notice: section.Options.Notice,
		}
		if state == controller.StateSucceeded {
			out.SubmissionID = reqID
		}
		writeJSON(w, status, out)
		return
	}
	s.writePage(w, r, status, layout(section)...)
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, status int, sections ...render.Section) {
	body, err := s.html.RenderPage(r.Context(), render.Page{
		Title:    s.title,
		Theme:    s.theme,
		Sections: sections,
	})
	if err != nil {
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.html.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// liveOptions copies what the controller left in the in-memory form.
func liveOptions(page *controller.MemoryForm) render.RenderOptions {
	fields := page.Fields()
	opts := render.RenderOptions{
		Values:         make(map[string]string, len(fields)),
		Errors:         page.Errors(),
		Cued:           make(map[string]bool),
		SubmitLabel:    page.Label(),
		SubmitDisabled: !page.Enabled(),
	}
	for _, f := range fields {
		opts.Values[f.Name] = f.Value
		if page.Cued(f.Name) {
			opts.Cued[f.Name] = true
		}
	}
	if notice, visible := page.Notice(); visible {
		opts.Notice = notice
	}
	return opts
}

func cuedFields(page *controller.MemoryForm) []string {
	var out []string
	for _, f := range page.Fields() {
		if page.Cued(f.Name) {
			out = append(out, f.Name)
		}
	}
	sort.Strings(out)
	return out
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
