// Package catalog models the portal's library content (books and videos)
// and decides which items a viewer may see.
package catalog

// Kind distinguishes books from videos.
type Kind string

const (
	KindBook  Kind = "book"
	KindVideo Kind = "video"
)

// ParseKind accepts singular and plural forms ("book", "books").
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "book", "books", "livro", "livros":
		return KindBook, true
	case "video", "videos", "vídeo", "vídeos":
		return KindVideo, true
	default:
		return "", false
	}
}

// DefaultPageSize returns the page size the portal uses for each kind.
func (k Kind) DefaultPageSize() int {
	if k == KindVideo {
		return 12
	}
	return 8
}

// Role is the portal user type.
type Role string

const (
	RoleStudent Role = "Aluno"
	RoleTeacher Role = "Professor"
)

// Viewer is the user looking at the library.
type Viewer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
	Age  int    `json:"age"` // only meaningful for students
}

// NewViewer builds a viewer, clamping negative ages to zero.
func NewViewer(role Role, age int) Viewer {
	if age < 0 {
		age = 0
	}
	return Viewer{Role: role, Age: age}
}

// BypassesAgeGate reports whether the viewer sees content regardless of its
// age rating. Only teachers do; unknown roles are gated like students.
func (v Viewer) BypassesAgeGate() bool {
	return v.Role == RoleTeacher
}

// CanManageContent reports whether the viewer may edit or delete items.
func (v Viewer) CanManageContent() bool {
	return v.Role == RoleTeacher
}

// Item is a single book or video as returned by the backend, with its
// genre and rating fields already normalized.
type Item struct {
	ID        string   `json:"id"`
	Kind      Kind     `json:"kind"`
	Title     string   `json:"title"`
	Author    string   `json:"author"`
	Genres    GenreSet `json:"genres"`
	AgeRating Rating   `json:"ageRating"`
	Likes     []string `json:"likes,omitempty"`
	FileURL   string   `json:"fileUrl,omitempty"`
	CoverURL  string   `json:"coverUrl,omitempty"`
	VideoURL  string   `json:"videoUrl,omitempty"`
	Issues    []error  `json:"-"` // normalization problems found at ingestion
}

// LikedBy reports whether the given user has liked the item.
func (i Item) LikedBy(userID string) bool {
	for _, id := range i.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Query is the user-supplied search and genre selection.
type Query struct {
	Search string
	Genre  string
}

// AllGenres is the genre selector value meaning "no genre filter".
const AllGenres = "Todos"

var bookGenres = []string{"Romance", "Ficção", "Mistério", "Fantasia", "Aventura", "Não-ficção", "Didático"}

var videoGenres = append(append([]string{}, bookGenres...), "Filmes", "Inclusão")

// GenresFor returns the fixed genre list offered for a kind.
func GenresFor(k Kind) []string {
	if k == KindVideo {
		return append([]string(nil), videoGenres...)
	}
	return append([]string(nil), bookGenres...)
}

// ValidGenre reports whether g is a selectable genre for the kind,
// including the "Todos" wildcard.
func ValidGenre(k Kind, g string) bool {
	g = normalizeTag(g)
	if g == "" || g == AllGenres {
		return true
	}
	for _, known := range GenresFor(k) {
		if known == g {
			return true
		}
	}
	return false
}
