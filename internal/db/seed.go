package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures: a couple of
// series and a roster of characters with varied star ratings, enough to
// exercise spawning, claiming and collection caps locally.
func SeedFixtures(database *sql.DB) error {
	series := []struct {
		id    int64
		title string
	}{
		{1, "Moonlit Academy"},
		{2, "Ashen Vanguard"},
	}
	for _, s := range series {
		if _, err := database.Exec(
			"INSERT INTO series (id, title) VALUES (?, ?)",
			s.id, s.title,
		); err != nil {
			return fmt.Errorf("seed series: %w", err)
		}
	}

	characters := []struct {
		id       int64
		seriesID int64
		name     string
		stars    int
		gender   string
	}{
		{1, 1, "Aria Nightshade", 5, "female"},
		{2, 1, "Selene Valemont", 4, "female"},
		{3, 1, "Cassian Drake", 3, "male"},
		{4, 2, "Rook Tarrasch", 4, "male"},
		{5, 2, "Ivy Thornwood", 3, "female"},
		{6, 2, "Nix", 2, "other"},
		{7, 2, "Mara Kessler", 1, "female"},
	}
	for _, c := range characters {
		if _, err := database.Exec(
			"INSERT INTO characters (id, series_id, name, stars, gender) VALUES (?, ?, ?, ?, ?)",
			c.id, c.seriesID, c.name, c.stars, c.gender,
		); err != nil {
			return fmt.Errorf("seed characters: %w", err)
		}
	}

	return nil
}
