package utils

import (
	"fmt"
	rndm "math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var upperAlnumRunes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateUpperAlnum creates a random uppercase alphanumeric string of length n.
func GenerateUpperAlnum(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = upperAlnumRunes[rndm.Intn(len(upperAlnumRunes))]
	}
	return string(b)
}

func GetUUID() string {
	return uuid.NewString()
}

// NewOrderNumber returns a human-readable order token: ORD-XXXX-<unix ts>.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%d", GenerateUpperAlnum(4), now.Unix())
}

// --- Slice Helpers ---

func Contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}

// SplitTags takes a comma-separated string and returns a cleaned []string
func SplitTags(input string) []string {
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	var tags []string
	seen := make(map[string]bool)

	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			continue
		}
		tag = strings.ToLower(tag)
		if !seen[tag] {
			tags = append(tags, tag)
			seen[tag] = true
		}
	}
	return tags
}
