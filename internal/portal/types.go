package portal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/educa-portal/acervo/internal/catalog"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Tipo   string `json:"tipo"`
	UserID ID     `json:"userId"`
}

// User mirrors the backend's user resource.
type User struct {
	ID        ID          `json:"id"`
	Nome      string      `json:"nome"`
	Sobrenome string      `json:"sobrenome"`
	Email     string      `json:"email"`
	Idade     json.Number `json:"idade"`
	Tipo      string      `json:"tipo"`
}

// Viewer converts the user record into a catalog viewer. An unreadable age
// becomes 0, which only admits "Livre" content.
func (u User) Viewer() catalog.Viewer {
	age, err := u.Idade.Int64()
	if err != nil {
		age = 0
	}
	v := catalog.NewViewer(catalog.Role(strings.TrimSpace(u.Tipo)), int(age))
	v.ID = string(u.ID)
	v.Name = strings.TrimSpace(u.Nome + " " + u.Sobrenome)
	return v
}

// ID accepts identifiers encoded as JSON strings or numbers.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// contentDTO is a book or video as the backend sends it. Genre and rating
// fields are kept raw so both encodings can be normalized.
type contentDTO struct {
	ID        ID              `json:"id"`
	MongoID   ID              `json:"_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Genres    json.RawMessage `json:"genres"`
	AgeRating json.RawMessage `json:"ageRating"`
	Likes     json.RawMessage `json:"likes"`
	FileURL   string          `json:"fileUrl"`
	CoverURL  string          `json:"coverUrl"`
	VideoURL  string          `json:"videoUrl"`
}

// toItem normalizes the DTO. Problems are recorded on the item rather than
// failing the list.
func (d contentDTO) toItem(kind catalog.Kind) catalog.Item {
	it := catalog.Item{
		ID:       string(d.ID),
		Kind:     kind,
		Title:    d.Title,
		Author:   d.Author,
		FileURL:  d.FileURL,
		CoverURL: d.CoverURL,
		VideoURL: d.VideoURL,
	}
	if it.ID == "" {
		it.ID = string(d.MongoID)
	}

	genres, err := catalog.DecodeGenres(d.Genres)
	if err != nil {
		it.Issues = append(it.Issues, err)
	}
	it.Genres = genres

	rating, err := catalog.DecodeRating(d.AgeRating)
	if err != nil {
		it.Issues = append(it.Issues, err)
	} else if _, err := catalog.ParseRating(rating); err != nil {
		it.Issues = append(it.Issues, err)
	} else if !rating.Known() {
		it.Issues = append(it.Issues, fmt.Errorf("%w: %q", catalog.ErrUnknownRating, rating))
	}
	it.AgeRating = rating

	it.Likes = decodeLikes(d.Likes)
	return it
}

// decodeLikes reads a list of user identifiers, skipping entries that are
// neither strings nor numbers.
func decodeLikes(raw json.RawMessage) []string {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	likes := make([]string, 0, len(list))
	for _, r := range list {
		var id ID
		if err := json.Unmarshal(r, &id); err != nil || id == "" {
			continue
		}
		likes = append(likes, string(id))
	}
	return likes
}

func toItems(dtos []contentDTO, kind catalog.Kind) []catalog.Item {
	items := make([]catalog.Item, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toItem(kind))
	}
	return items
}
