// SPDX-License-Identifier: AGPL-3.0-only
package authhelp

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckTokenHash(hash, token string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
	return err == nil
}

func ValidateTokenStrength(token string) error {
	if len(token) < 16 {
		return fmt.Errorf("Token must be at least 16 characters long")
	}
	return nil
}
