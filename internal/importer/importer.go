package importer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

// Importer loads a legacy CSV data dump into the database. Rows are
// upserted: users and slugs by their natural keys, everything else by
// the dump's explicit ids. The dump's numeric ids are remapped onto
// the live rows, so re-running the import is safe.
type Importer struct {
	db     *gorm.DB
	logger *slog.Logger

	userIDs     map[int64]string
	categoryIDs map[int64]int64
	genreIDs    map[int64]int64
	titleIDs    map[int64]int64
	reviewIDs   map[int64]int64
}

func New(db *gorm.DB, logger *slog.Logger) *Importer {
	return &Importer{
		db:          db,
		logger:      logger,
		userIDs:     make(map[int64]string),
		categoryIDs: make(map[int64]int64),
		genreIDs:    make(map[int64]int64),
		titleIDs:    make(map[int64]int64),
		reviewIDs:   make(map[int64]int64),
	}
}

// Run imports the whole dump in referential order.
func (imp *Importer) Run(dataDir string) error {
	steps := []struct {
		file string
		load func(path string) error
	}{
		{"users.csv", imp.loadUsers},
		{"category.csv", imp.loadCategories},
		{"genre.csv", imp.loadGenres},
		{"titles.csv", imp.loadTitles},
		{"genre_title.csv", imp.loadGenreTitles},
		{"review.csv", imp.loadReviews},
		{"comments.csv", imp.loadComments},
	}

	for _, step := range steps {
		path := filepath.Join(dataDir, step.file)
		if err := step.load(path); err != nil {
			return fmt.Errorf("%s: %w", step.file, err)
		}
		imp.logger.Info("imported", "file", step.file)
	}
	return nil
}

func (imp *Importer) loadUsers(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := ParseUsers(file)
	if err != nil {
		return err
	}

	for _, row := range rows {
		role := models.Role(row.Role)
		if role == "" {
			role = models.RoleUser
		}
		if !role.Valid() {
			return fmt.Errorf("user %d: unknown role %q", row.ID, row.Role)
		}
		user := models.User{
			Username:  row.Username,
			Email:     row.Email,
			Role:      role,
			Bio:       row.Bio,
			FirstName: row.FirstName,
			LastName:  row.LastName,
		}
		if err := imp.db.Where("username = ?", row.Username).
			FirstOrCreate(&user).Error; err != nil {
			return err
		}
		imp.userIDs[row.ID] = user.ID
	}
	return nil
}

func (imp *Importer) loadCategories(path string) error {
	return imp.loadSlugged(path, imp.categoryIDs, func(row SlugRow) (int64, error) {
		category := models.Category{Name: row.Name, Slug: row.Slug}
		err := imp.db.Where("slug = ?", row.Slug).FirstOrCreate(&category).Error
		return category.ID, err
	})
}

func (imp *Importer) loadGenres(path string) error {
	return imp.loadSlugged(path, imp.genreIDs, func(row SlugRow) (int64, error) {
		genre := models.Genre{Name: row.Name, Slug: row.Slug}
		err := imp.db.Where("slug = ?", row.Slug).FirstOrCreate(&genre).Error
		return genre.ID, err
	})
}

func (imp *Importer) loadSlugged(path string, ids map[int64]int64, upsert func(SlugRow) (int64, error)) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := ParseSlugs(file)
	if err != nil {
		return err
	}

	for _, row := range rows {
		id, err := upsert(row)
		if err != nil {
			return err
		}
		ids[row.ID] = id
	}
	return nil
}

func (imp *Importer) loadTitles(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := ParseTitles(file)
	if err != nil {
		return err
	}

	for _, row := range rows {
		categoryID, ok := imp.categoryIDs[row.CategoryID]
		if !ok {
			return fmt.Errorf("title %d references unknown category %d", row.ID, row.CategoryID)
		}
		title := models.Title{
			Name:       row.Name,
			Year:       row.Year,
			CategoryID: categoryID,
		}
		if err := imp.db.Where("name = ? AND year = ?", row.Name, row.Year).
			FirstOrCreate(&title).Error; err != nil {
			return err
		}
		imp.titleIDs[row.ID] = title.ID
	}
	return nil
}

func (imp *Importer) loadGenreTitles(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := ParseGenreTitles(file)
	if err != nil {
		return err
	}

	for _, row := range rows {
		titleID, ok := imp.titleIDs[row.TitleID]
		if !ok {
			return fmt.Errorf("link %d references unknown title %d", row.ID, row.TitleID)
		}
		genreID, ok := imp.genreIDs[row.GenreID]
		if !ok {
			return fmt.Errorf("link %d references unknown genre %d", row.ID, row.GenreID)
		}
		link := models.TitleGenre{TitleID: titleID, GenreID: genreID}
		if err := imp.db.Where("title_id = ? AND genre_id = ?", titleID, genreID).
			FirstOrCreate(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func (imp *Importer) loadReviews(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := ParseReviews(file)
	if err != nil {
		return err
	}

	for _, row := range rows {
		titleID, ok := imp.titleIDs[row.TitleID]
		if !ok {
			return fmt.Errorf("review %d references unknown title %d", row.ID, row.TitleID)
		}
		authorID, ok := imp.userIDs[row.AuthorID]
		if !ok {
			return fmt.Errorf("review %d references unknown user %d", row.ID, row.AuthorID)
		}
		review := models.Review{
			TitleID:  titleID,
			AuthorID: authorID,
			Text:     row.Text,
			Score:    row.Score,
			PubDate:  row.PubDate,
		}
		if err := imp.db.Where("title_id = ? AND author_id = ?", titleID, authorID).
			FirstOrCreate(&review).Error; err != nil {
			return err
		}
		imp.reviewIDs[row.ID] = review.ID
	}
	return nil
}

func (imp *Importer) loadComments(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	rows, err := ParseComments(file)
	if err != nil {
		return err
	}

	for _, row := range rows {
		reviewID, ok := imp.reviewIDs[row.ReviewID]
		if !ok {
			return fmt.Errorf("comment %d references unknown review %d", row.ID, row.ReviewID)
		}
		authorID, ok := imp.userIDs[row.AuthorID]
		if !ok {
			return fmt.Errorf("comment %d references unknown user %d", row.ID, row.AuthorID)
		}
		comment := models.Comment{
			ReviewID: reviewID,
			AuthorID: authorID,
			Text:     row.Text,
			PubDate:  row.PubDate,
		}
		if err := imp.db.Where("review_id = ? AND author_id = ? AND pub_date = ?",
			reviewID, authorID, row.PubDate).
			FirstOrCreate(&comment).Error; err != nil {
			return err
		}
	}
	return nil
}
