package genres

type CreateGenreRequest struct {
	GenreName string `json:"name"`
	GenreCode string `json:"code"`
}

type UpdateGenreRequest struct {
	GenreName  string `json:"name"`
	GenreCode  string `json:"code"`
	IsDisabled bool   `json:"isDisabled"`
}

type Genre struct {
	GenreID    uint64 `db:"genre_id"    json:"id"`
	GenreName  string `db:"genre_name"  json:"name"`
	GenreCode  string `db:"genre_code"  json:"code"`
	IsDisabled bool   `db:"is_disabled" json:"isDisabled"`
}
