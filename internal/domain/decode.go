package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DecodeError reports a record whose JSON object lacks declared fields.
type DecodeError struct {
	Record  string
	Missing []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: missing fields [%s]", e.Record, strings.Join(e.Missing, ", "))
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Wire mirrors use pointers so that an absent key (or null) stays nil and fails
// the required check instead of collapsing to a zero value.

type geoWire struct {
	Lat *string `json:"lat" validate:"required"`
	Lng *string `json:"lng" validate:"required"`
}

type addressWire struct {
	Street  *string   `json:"street" validate:"required"`
	Suite   *string   `json:"suite" validate:"required"`
	City    *string   `json:"city" validate:"required"`
	Zipcode *string   `json:"zipcode" validate:"required"`
	Geo     *GeoPoint `json:"geo" validate:"required"`
}

type companyWire struct {
	Name           *string `json:"name" validate:"required"`
	CatchPhrase    *string `json:"catchPhrase" validate:"required"`
	BusinessSlogan *string `json:"bs" validate:"required"`
}

type userWire struct {
	ID       *int     `json:"id" validate:"required"`
	Name     *string  `json:"name" validate:"required"`
	Username *string  `json:"username" validate:"required"`
	Email    *string  `json:"email" validate:"required"`
	Phone    *string  `json:"phone" validate:"required"`
	Website  *string  `json:"website" validate:"required"`
	Address  *Address `json:"address" validate:"required"`
	Company  *Company `json:"company" validate:"required"`
}

func decodeStrict(record string, data []byte, wire any) error {
	if err := json.Unmarshal(data, wire); err != nil {
		return err
	}
	if err := validate.Struct(wire); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validate %s: %w", record, err)
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return &DecodeError{Record: record, Missing: missing}
	}
	return nil
}

// UnmarshalJSON requires both coordinates to be present.
func (g *GeoPoint) UnmarshalJSON(data []byte) error {
	var w geoWire
	if err := decodeStrict("geo", data, &w); err != nil {
		return err
	}
	*g = GeoPoint{Lat: *w.Lat, Lng: *w.Lng}
	return nil
}

// UnmarshalJSON requires every address field, including geo.
func (a *Address) UnmarshalJSON(data []byte) error {
	var w addressWire
	if err := decodeStrict("address", data, &w); err != nil {
		return err
	}
	*a = Address{
		Street:  *w.Street,
		Suite:   *w.Suite,
		City:    *w.City,
		Zipcode: *w.Zipcode,
		Geo:     *w.Geo,
	}
	return nil
}

// UnmarshalJSON requires name, catchPhrase and bs.
func (c *Company) UnmarshalJSON(data []byte) error {
	var w companyWire
	if err := decodeStrict("company", data, &w); err != nil {
		return err
	}
	*c = Company{
		Name:           *w.Name,
		CatchPhrase:    *w.CatchPhrase,
		BusinessSlogan: *w.BusinessSlogan,
	}
	return nil
}

// UnmarshalJSON requires every user field; nested records are checked by their own decoders.
func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := decodeStrict("user", data, &w); err != nil {
		return err
	}
	*u = User{
		ID:       *w.ID,
		Name:     *w.Name,
		Username: *w.Username,
		Email:    *w.Email,
		Phone:    *w.Phone,
		Website:  *w.Website,
		Address:  *w.Address,
		Company:  *w.Company,
	}
	return nil
}

// UnmarshalJSON rejects a null list; an empty array is a valid, empty result.
func (l *UserList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("decode user list: got null, want array")
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return err
	}
	if users == nil {
		users = []User{}
	}
	*l = users
	return nil
}
