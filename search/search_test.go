package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kovan/store"
)

func users() []store.Document {
	return []store.Document{
		{"id": "1", "name": "Ayşe Yılmaz", "headline": "Çevre gönüllüsü", "location": "İzmir", "skills": []interface{}{"Organizasyon", "Eğitim"}},
		{"id": "2", "name": "Mehmet Demir", "headline": "Yazılımcı", "location": "Ankara", "skills": []interface{}{"Yazılım"}},
		{"id": "3", "name": "Zeynep Kaya", "headline": "Öğretmen", "location": "İstanbul", "skills": []interface{}{"Eğitim"}},
	}
}

func ids(docs []store.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		term   string
		fields []string
		want   []string
	}{
		{"empty term returns all", "", []string{"name"}, []string{"1", "2", "3"}},
		{"whitespace term returns all", "   ", []string{"name"}, []string{"1", "2", "3"}},
		{"case insensitive", "MEHMET", []string{"name"}, []string{"2"}},
		{"term is trimmed", "  kaya ", []string{"name"}, []string{"3"}},
		{"any field matches", "ankara", []string{"name", "location"}, []string{"2"}},
		{"arrays of strings", "eğitim", []string{"skills"}, []string{"1", "3"}},
		{"no match", "istanbul-x", []string{"location"}, []string{}},
		{"missing field ignored", "x", []string{"nope"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(users(), tt.term, tt.fields)))
		})
	}
}

func TestFilter_DottedFields(t *testing.T) {
	items := []store.Document{
		{"id": "a", "authorInfo": map[string]interface{}{"name": "Deniz"}},
		{"id": "b", "authorInfo": map[string]interface{}{"name": "Ece"}},
	}
	assert.Equal(t, []string{"b"}, ids(Filter(items, "ece", []string{"authorInfo.name"})))
}

func TestDiscover(t *testing.T) {
	assert.Equal(t, []string{"1", "3"}, ids(Discover(users(), "", "Eğitim")))
	assert.Equal(t, []string{"3"}, ids(Discover(users(), "öğretmen", "Eğitim")))
	assert.Equal(t, []string{"2"}, ids(Discover(users(), "ankara", "")))
	assert.Empty(t, Discover(users(), "ankara", "Eğitim"))
}

func TestSkills(t *testing.T) {
	assert.Equal(t, []string{"Organizasyon", "Eğitim", "Yazılım"}, Skills(users()))
}
