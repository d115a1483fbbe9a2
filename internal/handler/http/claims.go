package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

var errMissingClaim = errors.New("required claim missing from token")

// dealerIDFromRequest pulls the dealer scope out of the verified token. Every
// handler passes it down explicitly so services never touch the request.
func dealerIDFromRequest(r *http.Request) (string, error) {
	return claimString(r, "dealer_id")
}

func userIDFromRequest(r *http.Request) (string, error) {
	return claimString(r, "user_id")
}

// employeeIDFromRequest is only set on employee tokens; admin tokens carry no
// employee identity.
func employeeIDFromRequest(r *http.Request) (string, error) {
	return claimString(r, "employee_id")
}

func claimString(r *http.Request, key string) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", errMissingClaim
	}
	return value, nil
}
