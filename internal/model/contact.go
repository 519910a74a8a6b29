package model

// ContactRequest is a contact form submission.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResponse is the result of a contact form submission.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Mock    bool   `json:"mock,omitempty"`
}

// Project is one portfolio project entry.
type Project struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Language    string   `json:"language"`
	Forks       int      `json:"forks,omitempty"`
	Watchers    int      `json:"watchers,omitempty"`
}

// ProjectsResponse lists portfolio projects and where they came from.
type ProjectsResponse struct {
	Projects []Project `json:"projects"`
	Source   string    `json:"source"`
}
