package dto

// PageContext carries the page state the host shim observed when it forwarded
// a signal.
type PageContext struct {
	URL      string `json:"url" binding:"required" example:"https://www.example.com/contact-us/?utm_source=google"`
	Referrer string `json:"referrer" example:"https://www.google.com/"`
}

// PageviewRequest represents a page load signal. Type is optional and
// defaults to "pageview"; the shim may record arbitrary event types through
// the same path.
type PageviewRequest struct {
	Type string      `json:"type" example:"pageview"`
	Page PageContext `json:"page" binding:"required"`
}

// ClickRequest represents a click signal. Href is the resolved href of the
// nearest enclosing anchor, or empty when the click landed outside any
// anchor.
type ClickRequest struct {
	Href string      `json:"href" example:"tel:+1234567890"`
	Page PageContext `json:"page" binding:"required"`
}

// FormEntry is one name/value pair from the submitted form data, in
// submission order.
type FormEntry struct {
	Name  string `json:"name" binding:"required" example:"item_meta[21]"`
	Value string `json:"value" example:"John"`
}

// FormSubmissionRequest represents an intercepted form submission. Markup is
// the form's current HTML, used to associate field names with their labels.
type FormSubmissionRequest struct {
	FormID  string      `json:"form_id" example:"form-1"`
	Markup  string      `json:"markup" binding:"required"`
	Entries []FormEntry `json:"entries" binding:"required,min=1,dive"`
	Page    PageContext `json:"page" binding:"required"`
}

// FormsDiscoveredRequest notifies the agent of form elements currently
// present in the document, including ones injected after initial load.
type FormsDiscoveredRequest struct {
	FormIDs []string `json:"form_ids" binding:"required,min=1"`
}
