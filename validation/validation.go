// Package validation checks user input before it reaches the store.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Errors maps a form field to its message.
type Errors map[string]string

func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Post is the validated, trimmed content of the compose form.
type Post struct {
	Title   string
	Content string
	Tags    []string
}

// ValidatePost reports the first failing rule under "post", matching the
// single message the compose form shows.
func ValidatePost(title, content, tags string) (Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	var msg string
	switch {
	case title == "":
		msg = "Title is required"
	case len([]rune(title)) < 3:
		msg = "Title must be at least 3 characters"
	case content == "":
		msg = "Content is required"
	case len([]rune(content)) < 10:
		msg = "Content must be at least 10 characters"
	}
	if msg != "" {
		return Post{}, Errors{"post": msg}
	}
	return Post{Title: title, Content: content, Tags: SplitTags(tags)}, nil
}

// SplitTags splits a comma separated list, trimming entries and dropping
// empty ones.
func SplitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func ValidateComment(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", Errors{"text": "Comment cannot be empty"}
	}
	return text, nil
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// DigitsOnly drops every non-digit, the way the phone input does while typing.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Registration carries all three steps of the sign-up form.
type Registration struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	BirthDate       string   `json:"birthDate"`
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirmPassword"`
	AgreedToTerms   bool     `json:"agreedToTerms"`
	AgreedToPrivacy bool     `json:"agreedToPrivacy"`
	City            string   `json:"city"`
	Interests       []string `json:"interests"`
}

func (r Registration) Step1() Errors {
	errs := Errors{}
	if strings.TrimSpace(r.FirstName) == "" {
		errs["firstName"] = "Ad gerekli"
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs["lastName"] = "Soyad gerekli"
	}
	switch {
	case strings.TrimSpace(r.Email) == "":
		errs["email"] = "E-posta gerekli"
	case !emailPattern.MatchString(r.Email):
		errs["email"] = "Geçerli bir e-posta adresi girin"
	}
	switch {
	case r.Phone == "":
		errs["phone"] = "Telefon gerekli"
	case !phonePattern.MatchString(r.Phone):
		errs["phone"] = "Telefon numarası 10 haneli olmalı"
	}
	switch {
	case r.BirthDate == "":
		errs["birthDate"] = "Doğum tarihi gerekli"
	case !validDate(r.BirthDate):
		errs["birthDate"] = "Geçerli bir doğum tarihi girin"
	}
	return errs
}

func (r Registration) Step2() Errors {
	errs := Errors{}
	if strings.TrimSpace(r.Username) == "" {
		errs["username"] = "Kullanıcı adı gerekli"
	}
	switch {
	case r.Password == "":
		errs["password"] = "Şifre gerekli"
	case len(r.Password) < 6:
		errs["password"] = "Şifre en az 6 karakter olmalı"
	}
	if r.Password != r.ConfirmPassword {
		errs["confirmPassword"] = "Şifreler eşleşmiyor"
	}
	if !r.AgreedToTerms {
		errs["terms"] = "Kullanım şartlarını kabul etmelisiniz"
	}
	if !r.AgreedToPrivacy {
		errs["privacy"] = "Gizlilik politikasını kabul etmelisiniz"
	}
	return errs
}

func (r Registration) Step3() Errors {
	errs := Errors{}
	if strings.TrimSpace(r.City) == "" {
		errs["city"] = "Şehir seçin"
	}
	if len(r.Interests) == 0 {
		errs["interests"] = "En az bir ilgi alanı seçin"
	}
	return errs
}

// Validate runs every step and merges the results.
func (r Registration) Validate() error {
	errs := Errors{}
	for _, step := range []Errors{r.Step1(), r.Step2(), r.Step3()} {
		for k, v := range step {
			errs[k] = v
		}
	}
	return errs.Err()
}

func validDate(s string) bool {
	t, err := time.Parse("2006-01-02", s)
	return err == nil && t.Before(time.Now())
}

// Image upload limits.
const MaxImageSize = 10 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func ValidateImage(contentType string, size int64) error {
	if !imageTypes[strings.ToLower(contentType)] {
		return Errors{"file": "Geçersiz dosya tipi. Sadece JPEG, PNG, GIF ve WebP formatları kabul edilir."}
	}
	if size > MaxImageSize {
		return Errors{"file": "Dosya boyutu çok büyük. Maksimum 10MB yüklenebilir."}
	}
	return nil
}
