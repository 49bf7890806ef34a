package marvel

import "github.com/mmcdole/herodex/internal/domain"

// MapHero converts an API character to a domain hero
func MapHero(c Character) domain.Hero {
	return domain.Hero{
		ID: c.ID,
		HeroFields: domain.HeroFields{
			Name:        c.Name,
			Description: c.Description,
			Thumbnail: domain.Thumbnail{
				Path:      c.Thumbnail.Path,
				Extension: c.Thumbnail.Extension,
			},
			Comics:  domain.Availability{Available: c.Comics.Available},
			Series:  domain.Availability{Available: c.Series.Available},
			Stories: domain.Availability{Available: c.Stories.Available},
		},
	}
}

// MapHeroes converts a result set, preserving server order
func MapHeroes(chars []Character) []domain.Hero {
	heroes := make([]domain.Hero, 0, len(chars))
	for _, c := range chars {
		heroes = append(heroes, MapHero(c))
	}
	return heroes
}

// MapPage converts a data container to a domain page
func MapPage(d DataContainer) *domain.Page {
	return &domain.Page{
		Offset:  d.Offset,
		Limit:   d.Limit,
		Total:   d.Total,
		Count:   d.Count,
		Results: MapHeroes(d.Results),
	}
}
