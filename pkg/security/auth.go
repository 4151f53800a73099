package security

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/pkg/models"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Unable to load .env: %v", err)
		}
		secret = os.Getenv("JWT_SECRET")
	}

	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtSecret = []byte(secret)
}

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.Select("id", "username", "password_hash", "role").From("users").Where(goqu.Ex{"username": username})

	if _, err := query.Executor().ScanStruct(&user); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID string, role string, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID,
		"role":     role,
		"username": username,
		"exp":      time.Now().Add(time.Hour * 120).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func getTokenFromContext(c *gin.Context) (*jwt.Token, error) {
	tokenValue, exists := c.Get("token")
	if !exists {
		return nil, fmt.Errorf("token missing from context")
	}

	token, ok := tokenValue.(*jwt.Token)
	if !ok {
		return nil, fmt.Errorf("token has unexpected type")
	}

	return token, nil
}

func GetUserIDFromToken(c *gin.Context) (string, error) {
	token, err := getTokenFromContext(c)

	if err != nil {
		return "", err
	}

	claims := token.Claims.(jwt.MapClaims)
	userID, ok := claims["userID"].(string)
	if !ok {
		return "", fmt.Errorf("userID is not a string")
	}

	return userID, nil
}
