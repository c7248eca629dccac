package models

// User represents a stored user row. Timestamps are kept as the textual
// values stored in the database (the format depends on the active
// dialect) and returned to clients verbatim.
type User struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Feature   Feature `json:"feature"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateUserRequest is the JSON body accepted by POST /users.
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	Feature  Feature `json:"feature"`
}

// UpdateUserRequest is the JSON body accepted by PATCH/PUT /users/{id}.
// Nil pointers mean the field was not supplied; the feature uses its own
// presence flag so an explicit null can clear the column.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Feature  Feature `json:"feature"`
}

// Fields converts the request into the field set passed to the
// repository, keeping only the keys that were actually supplied.
func (r UpdateUserRequest) Fields() UpdateFields {
	f := UpdateFields{
		Username: r.Username,
		Email:    r.Email,
	}
	if r.Feature.Present() {
		feature := r.Feature
		f.Feature = &feature
	}
	return f
}

// UpdateFields is the set of mutable columns supplied to a partial
// update. A nil pointer means "leave the column untouched".
type UpdateFields struct {
	Username *string
	Email    *string
	Feature  *Feature
}

// Empty reports whether no field was supplied at all.
func (f UpdateFields) Empty() bool {
	return f.Username == nil && f.Email == nil && f.Feature == nil
}
