package security

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

const tokenLifetime = 10 * time.Hour

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

func secretKey() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			// .env may not have been loaded yet when this package is first used
			if err := godotenv.Load(); err == nil {
				secret = os.Getenv("JWT_SECRET")
			}
		}
		if secret == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}
		jwtSecret = []byte(secret)
	})

	return jwtSecret
}

// GenerateJWT issues the bearer token returned by login. Identity alone
// authorizes: there is no credential beyond the username lookup.
func GenerateJWT(userID int, username string, name string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID,
		"username": username,
		"name":     name,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}
