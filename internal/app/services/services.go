package services

// Services defined in this package:
// - StudentService: filtered student list
// - RegistrationService: student self-registration and its notification mails
// - StreamService: redirect to the current user's stream page
// - TaxonomyService: stream vocabulary, term pages and path aliases
// - FileService: managed uploads, permanent flag and temporary file cleanup
// - AuthService: login and session tokens
