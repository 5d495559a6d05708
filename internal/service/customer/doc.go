// Package customer implements customer onboarding: creating a customer record
// and fetching it by identifier.
//
// The service layer is pure orchestration over the Repository interface
// defined in repository.go. Identifier allocation and record visibility are
// the repository's job; the service adds no validation or transformation of
// its own. It never imports net/http or a storage driver directly.
package customer
