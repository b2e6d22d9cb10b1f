package domain

// Domain contains the user-directory records. Values are decoded fresh from each
// response and never mutated afterwards.

// GeoPoint holds coordinates exactly as the directory sends them (decimal text).
type GeoPoint struct {
	Lat string `json:"lat" yaml:"lat"`
	Lng string `json:"lng" yaml:"lng"`
}

// Address is a user's postal address.
type Address struct {
	Street  string   `json:"street" yaml:"street"`
	Suite   string   `json:"suite" yaml:"suite"`
	City    string   `json:"city" yaml:"city"`
	Zipcode string   `json:"zipcode" yaml:"zipcode"`
	Geo     GeoPoint `json:"geo" yaml:"geo"`
}

// Company is the employer block of a user. The wire keys are mixed-case.
type Company struct {
	Name           string `json:"name" yaml:"name"`
	CatchPhrase    string `json:"catchPhrase" yaml:"catchPhrase"`
	BusinessSlogan string `json:"bs" yaml:"bs"`
}

// User is a single directory entry. ID addresses the user in GET /users/{id}.
type User struct {
	ID       int     `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Username string  `json:"username" yaml:"username"`
	Email    string  `json:"email" yaml:"email"`
	Phone    string  `json:"phone" yaml:"phone"`
	Website  string  `json:"website" yaml:"website"`
	Address  Address `json:"address" yaml:"address"`
	Company  Company `json:"company" yaml:"company"`
}

// UserList keeps users in server response order.
type UserList []User
