package catalog

// AuthorStats aggregates an author's whole catalog, private items included.
// Likes are bookmark records on the author's books; comments are review
// records on the author's chapters.
type AuthorStats struct {
	BooksCount    int `json:"booksCount"`
	ChaptersCount int `json:"chaptersCount"`
	WordsCount    int `json:"wordsCount"`
	LikesCount    int `json:"likesCount"`
	CommentsCount int `json:"commentsCount"`
}
