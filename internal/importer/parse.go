package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Row types mirror the fixed CSV column schemas of the legacy data
// dump. Numeric ids are the dump's own ids, remapped during import.

type UserRow struct {
	ID        int64
	Username  string
	Email     string
	Role      string
	Bio       string
	FirstName string
	LastName  string
}

type SlugRow struct {
	ID   int64
	Name string
	Slug string
}

type TitleRow struct {
	ID         int64
	Name       string
	Year       int
	CategoryID int64
}

type GenreTitleRow struct {
	ID      int64
	TitleID int64
	GenreID int64
}

type ReviewRow struct {
	ID       int64
	TitleID  int64
	Text     string
	AuthorID int64
	Score    int
	PubDate  time.Time
}

type CommentRow struct {
	ID       int64
	ReviewID int64
	Text     string
	AuthorID int64
	PubDate  time.Time
}

// record gives header-keyed access to one CSV line, like a dict
// reader.
type record struct {
	header map[string]int
	fields []string
	line   int
}

func (r record) get(column string) (string, error) {
	idx, ok := r.header[column]
	if !ok || idx >= len(r.fields) {
		return "", fmt.Errorf("line %d: missing column %q", r.line, column)
	}
	return r.fields[idx], nil
}

func (r record) getInt(column string) (int64, error) {
	raw, err := r.get(column)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %v", r.line, column, err)
	}
	return value, nil
}

func (r record) getTime(column string) (time.Time, error) {
	raw, err := r.get(column)
	if err != nil {
		return time.Time{}, err
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("line %d: column %q: %v", r.line, column, err)
	}
	return parsed, nil
}

// forEachRecord streams the CSV, calling fn once per data line.
func forEachRecord(reader io.Reader, fn func(record) error) error {
	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1

	headerFields, err := cr.Read()
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}
	header := make(map[string]int, len(headerFields))
	for i, name := range headerFields {
		header[name] = i
	}

	line := 1
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		line++
		if err := fn(record{header: header, fields: fields, line: line}); err != nil {
			return err
		}
	}
}

// ParseUsers reads the users.csv schema:
// id,username,email,role,bio,first_name,last_name
func ParseUsers(reader io.Reader) ([]UserRow, error) {
	var rows []UserRow
	err := forEachRecord(reader, func(rec record) error {
		id, err := rec.getInt("id")
		if err != nil {
			return err
		}
		row := UserRow{ID: id}
		if row.Username, err = rec.get("username"); err != nil {
			return err
		}
		if row.Email, err = rec.get("email"); err != nil {
			return err
		}
		if row.Role, err = rec.get("role"); err != nil {
			return err
		}
		if row.Bio, err = rec.get("bio"); err != nil {
			return err
		}
		if row.FirstName, err = rec.get("first_name"); err != nil {
			return err
		}
		if row.LastName, err = rec.get("last_name"); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// ParseSlugs reads the category.csv / genre.csv schema: id,name,slug
func ParseSlugs(reader io.Reader) ([]SlugRow, error) {
	var rows []SlugRow
	err := forEachRecord(reader, func(rec record) error {
		id, err := rec.getInt("id")
		if err != nil {
			return err
		}
		row := SlugRow{ID: id}
		if row.Name, err = rec.get("name"); err != nil {
			return err
		}
		if row.Slug, err = rec.get("slug"); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// ParseTitles reads the titles.csv schema: id,name,year,category
func ParseTitles(reader io.Reader) ([]TitleRow, error) {
	var rows []TitleRow
	err := forEachRecord(reader, func(rec record) error {
		id, err := rec.getInt("id")
		if err != nil {
			return err
		}
		year, err := rec.getInt("year")
		if err != nil {
			return err
		}
		categoryID, err := rec.getInt("category")
		if err != nil {
			return err
		}
		row := TitleRow{ID: id, Year: int(year), CategoryID: categoryID}
		if row.Name, err = rec.get("name"); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// ParseGenreTitles reads the genre_title.csv schema:
// id,title_id,genre_id
func ParseGenreTitles(reader io.Reader) ([]GenreTitleRow, error) {
	var rows []GenreTitleRow
	err := forEachRecord(reader, func(rec record) error {
		id, err := rec.getInt("id")
		if err != nil {
			return err
		}
		titleID, err := rec.getInt("title_id")
		if err != nil {
			return err
		}
		genreID, err := rec.getInt("genre_id")
		if err != nil {
			return err
		}
		rows = append(rows, GenreTitleRow{ID: id, TitleID: titleID, GenreID: genreID})
		return nil
	})
	return rows, err
}

// ParseReviews reads the review.csv schema:
// id,title_id,text,author,score,pub_date
func ParseReviews(reader io.Reader) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := forEachRecord(reader, func(rec record) error {
		id, err := rec.getInt("id")
		if err != nil {
			return err
		}
		titleID, err := rec.getInt("title_id")
		if err != nil {
			return err
		}
		authorID, err := rec.getInt("author")
		if err != nil {
			return err
		}
		score, err := rec.getInt("score")
		if err != nil {
			return err
		}
		pubDate, err := rec.getTime("pub_date")
		if err != nil {
			return err
		}
		row := ReviewRow{
			ID:       id,
			TitleID:  titleID,
			AuthorID: authorID,
			Score:    int(score),
			PubDate:  pubDate,
		}
		if row.Text, err = rec.get("text"); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}

// ParseComments reads the comments.csv schema:
// id,review_id,text,author,pub_date
func ParseComments(reader io.Reader) ([]CommentRow, error) {
	var rows []CommentRow
	err := forEachRecord(reader, func(rec record) error {
		id, err := rec.getInt("id")
		if err != nil {
			return err
		}
		reviewID, err := rec.getInt("review_id")
		if err != nil {
			return err
		}
		authorID, err := rec.getInt("author")
		if err != nil {
			return err
		}
		pubDate, err := rec.getTime("pub_date")
		if err != nil {
			return err
		}
		row := CommentRow{ID: id, ReviewID: reviewID, AuthorID: authorID, PubDate: pubDate}
		if row.Text, err = rec.get("text"); err != nil {
			return err
		}
		rows = append(rows, row)
		return nil
	})
	return rows, err
}
