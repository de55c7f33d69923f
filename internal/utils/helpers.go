package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SanitizeString trims whitespace from string
func SanitizeString(input string) string {
	return strings.TrimSpace(input)
}

// NormalizeEmail converts email to lowercase and trims spaces
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GenerateInvoiceNumber generates a unique invoice number
func GenerateInvoiceNumber() string {
	timestamp := time.Now().Unix()
	randomPart := generateRandomString(6)
	return fmt.Sprintf("INV-%d-%s", timestamp, randomPart)
}

// GeneratePaymentReference generates a unique payment reference
func GeneratePaymentReference() string {
	timestamp := time.Now().Unix()
	randomPart := generateRandomString(8)
	return fmt.Sprintf("PAY-%d-%s", timestamp, randomPart)
}

// GenerateBatchID generates an identifier for one import or apply batch
func GenerateBatchID() string {
	return uuid.NewString()
}

// Helper function to generate random string
func generateRandomString(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)

	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[num.Int64()]
	}

	return string(result)
}
