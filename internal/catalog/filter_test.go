package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func item(id, title string, rating Rating, genres ...string) Item {
	return Item{ID: id, Kind: KindBook, Title: title, AgeRating: rating, Genres: NewGenreSet(genres...)}
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func mixedRatings() []Item {
	return []Item{
		item("1", "Dom Casmurro", "14+", "Romance"),
		item("2", "O Pequeno Príncipe", "Livre", "Fantasia"),
		item("3", "Ensaio sobre a Cegueira", "18+", "Ficção"),
		item("4", "Sem rótulo", "", "Didático"),
		item("5", "Rótulo estranho", "para todos", "Didático"),
		item("6", "Harry Potter", "10+", "Fantasia", "Aventura"),
		item("7", "Capitães da Areia", "16+", "Romance", "Aventura"),
	}
}

func TestFilter_StudentAgeGateExample(t *testing.T) {
	items := []Item{
		item("a", "A", "12+"),
		item("b", "B", "Livre"),
		item("c", "C", "16+"),
	}
	got := Filter(items, NewViewer(RoleStudent, 12), Query{})
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestFilter_GenreExample(t *testing.T) {
	items := []Item{
		{ID: "1", Title: "Um", AgeRating: "Livre", Genres: ParseGenres("Romance,Fantasia")},
		{ID: "2", Title: "Dois", AgeRating: "Livre", Genres: ParseGenres("Romance")},
	}
	got := Filter(items, NewViewer(RoleStudent, 10), Query{Genre: "Fantasia"})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestFilter_TeacherBypassesAgeGate(t *testing.T) {
	items := mixedRatings()
	got := Filter(items, NewViewer(RoleTeacher, 0), Query{})
	assert.Equal(t, ids(items), ids(got), "teachers see malformed and adult ratings too")
}

func TestFilter_UnknownRoleIsGated(t *testing.T) {
	got := Filter(mixedRatings(), Viewer{Role: "Diretor", Age: 30}, Query{})
	assert.NotContains(t, ids(got), "4")
	assert.NotContains(t, ids(got), "5")
}

func TestFilter_LivreAlwaysVisibleToStudents(t *testing.T) {
	for age := 0; age <= 18; age++ {
		got := Filter(mixedRatings(), NewViewer(RoleStudent, age), Query{})
		assert.Contains(t, ids(got), "2", "age %d", age)
	}
}

func TestFilter_NumericRatingVisibleIffAgeReached(t *testing.T) {
	for _, r := range []Rating{"10+", "12+", "14+", "16+", "18+"} {
		rank := r.Rank()
		for age := 0; age <= 20; age++ {
			got := Filter([]Item{item("x", "X", r)}, NewViewer(RoleStudent, age), Query{})
			assert.Equal(t, rank <= age, len(got) == 1, "rating %s age %d", r, age)
		}
	}
}

func TestFilter_MalformedRatingsFailClosed(t *testing.T) {
	got := Filter(mixedRatings(), NewViewer(RoleStudent, 99), Query{})
	assert.Equal(t, []string{"1", "2", "3", "6", "7"}, ids(got))
}

func TestFilter_NegativeAgeClamps(t *testing.T) {
	got := Filter(mixedRatings(), NewViewer(RoleStudent, -3), Query{})
	assert.Equal(t, []string{"2"}, ids(got))
}

func TestFilter_Search(t *testing.T) {
	v := NewViewer(RoleTeacher, 0)

	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"1", "2", "3", "4", "5", "6", "7"}},
		{"harry", []string{"6"}},
		{"HARRY", []string{"6"}},
		{"príncipe", []string{"2"}},
		{"PRÍNCIPE", []string{"2"}},
		{"rótulo", []string{"4", "5"}},
		{"principe", []string{}},
		{"nada disso", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := Filter(mixedRatings(), v, Query{Search: tt.search})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_GenreAll(t *testing.T) {
	v := NewViewer(RoleTeacher, 0)
	all := Filter(mixedRatings(), v, Query{Genre: AllGenres})
	empty := Filter(mixedRatings(), v, Query{})
	assert.Equal(t, ids(empty), ids(all))
	assert.Len(t, all, 7)
}

func TestFilter_CombinedStepsKeepOrder(t *testing.T) {
	got := Filter(mixedRatings(), NewViewer(RoleStudent, 16), Query{Genre: "Aventura", Search: "a"})
	assert.Equal(t, []string{"6", "7"}, ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	queries := []Query{{}, {Genre: "Romance"}, {Search: "o"}, {Genre: "Fantasia", Search: "harry"}}
	viewers := []Viewer{NewViewer(RoleStudent, 11), NewViewer(RoleStudent, 18), NewViewer(RoleTeacher, 0)}
	for _, q := range queries {
		for _, v := range viewers {
			t.Run(fmt.Sprintf("%s/%d/%s/%s", v.Role, v.Age, q.Genre, q.Search), func(t *testing.T) {
				once := Filter(mixedRatings(), v, q)
				twice := Filter(once, v, q)
				assert.Equal(t, once, twice)
			})
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	items := mixedRatings()
	before := ids(items)
	_ = Filter(items, NewViewer(RoleStudent, 10), Query{Genre: "Fantasia"})
	assert.Equal(t, before, ids(items))
}

func TestFilter_NilInput(t *testing.T) {
	got := Filter(nil, NewViewer(RoleStudent, 10), Query{Search: "x"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterVisible(t *testing.T) {
	got := FilterVisible(mixedRatings(), NewViewer(RoleStudent, 14))
	assert.Equal(t, []string{"1", "2", "6"}, ids(got))
}

func TestViewer_Capabilities(t *testing.T) {
	assert.True(t, NewViewer(RoleTeacher, 40).BypassesAgeGate())
	assert.True(t, NewViewer(RoleTeacher, 40).CanManageContent())
	assert.False(t, NewViewer(RoleStudent, 40).BypassesAgeGate())
	assert.False(t, NewViewer(RoleStudent, 40).CanManageContent())
	assert.False(t, Viewer{Role: "professor"}.BypassesAgeGate())
}

func TestItem_LikedBy(t *testing.T) {
	it := Item{Likes: []string{"u1", "u2"}}
	assert.True(t, it.LikedBy("u2"))
	assert.False(t, it.LikedBy("u3"))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("videos")
	assert.True(t, ok)
	assert.Equal(t, KindVideo, k)

	k, ok = ParseKind("livro")
	assert.True(t, ok)
	assert.Equal(t, KindBook, k)

	_, ok = ParseKind("podcast")
	assert.False(t, ok)

	assert.Equal(t, 8, KindBook.DefaultPageSize())
	assert.Equal(t, 12, KindVideo.DefaultPageSize())
}
