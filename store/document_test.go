package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sample struct {
	ID        string    `bson:"_id,omitempty"`
	Title     string    `bson:"title"`
	Tags      []string  `bson:"tags"`
	Likes     int       `bson:"likes"`
	CreatedAt time.Time `bson:"createdAt"`
	Author    struct {
		Name string `bson:"name"`
	} `bson:"author"`
}

func TestEncodeDecode(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	in := sample{ID: "p1", Title: "Hello", Tags: []string{"a", "b"}, Likes: 2, CreatedAt: created}
	in.Author.Name = "Ayse"

	doc, err := Encode(in)
	require.NoError(t, err)
	assert.Equal(t, "p1", doc.ID())
	assert.Equal(t, int64(2), doc["likes"])
	assert.Equal(t, created, doc.Time("createdAt"))
	assert.Equal(t, "Ayse", doc.String("author.name"))
	assert.Equal(t, []string{"a", "b"}, doc.Strings("tags"))

	var out sample
	require.NoError(t, Decode(doc, &out))
	assert.Equal(t, in, out)
}

func TestEncode_DropsEmptyID(t *testing.T) {
	doc, err := Encode(sample{Title: "x"})
	require.NoError(t, err)
	_, ok := doc["id"]
	assert.False(t, ok)
}

func TestNormalize_DriverTypes(t *testing.T) {
	when := time.Date(2023, 3, 4, 5, 6, 7, 0, time.UTC)
	v := normalize(primitive.D{
		{Key: "at", Value: primitive.NewDateTimeFromTime(when)},
		{Key: "n", Value: int32(4)},
		{Key: "list", Value: primitive.A{"x", int32(1)}},
	})
	m, ok := v.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, when, m["at"])
	assert.Equal(t, int64(4), m["n"])
	assert.Equal(t, []interface{}{"x", int64(1)}, m["list"])
}

func TestDocumentLookup(t *testing.T) {
	d := Document{"stats": map[string]interface{}{"hoursVolunteered": 12.5}}
	v, ok := d.Lookup("stats.hoursVolunteered")
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)
	_, ok = d.Lookup("stats.missing")
	assert.False(t, ok)
	_, ok = d.Lookup("stats.hoursVolunteered.deeper")
	assert.False(t, ok)
	assert.Equal(t, int64(12), d.Int("stats.hoursVolunteered"))
}
