package domain

// Text returns a pointer to s for optional form fields.
func Text(s string) *string { return &s }

// TextValue returns the field value, or "" when it was not submitted.
func TextValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
