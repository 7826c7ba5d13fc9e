package domain

// Notifier delivers best-effort email notifications. Implementations must be
// safe for concurrent use; callers run sends off the request path and only log
// failures, so no method here may influence an API response.
type Notifier interface {
	SendWelcome(to, name string) error
	SendNewApplication(to, employerName, candidateName, jobTitle, applicationID string) error
	SendStatusChange(to, candidateName, jobTitle, companyName, status string) error
}
