package model

// ContactForm returns the landing page's contact form definition.
func ContactForm() FormModel {
	return FormModel{
		ID:          "contactForm",
		Kind:        FormKindContact,
		Endpoint:    "/contact",
		Method:      "POST",
		Summary:     "צור קשר",
		SubmitLabel: "שלח הודעה",
		Fields: []Field{
			{Name: "name", Kind: FieldKindText, Required: true, Label: "שם מלא"},
			{Name: "email", Kind: FieldKindEmail, Required: true, Label: "אימייל"},
			{Name: "phone", Kind: FieldKindTel, Label: "טלפון"},
			{Name: "subject", Kind: FieldKindText, Label: "נושא"},
			{Name: "message", Kind: FieldKindLongText, Required: true, Label: "הודעה"},
		},
	}
}

// NewsletterForm returns the footer newsletter sign-up form definition.
func NewsletterForm() FormModel {
	return FormModel{
		ID:          "newsletterForm",
		Kind:        FormKindNewsletter,
		Endpoint:    "/newsletter",
		Method:      "POST",
		SubmitLabel: "הרשמה",
		Fields: []Field{
			{Name: "email", Kind: FieldKindEmail, Required: true, Placeholder: "האימייל שלך"},
		},
	}
}
