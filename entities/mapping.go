package entities

import "CulinaShare-Backend/domain"

func (u *User) ToDomain() domain.User {
	return domain.User{
		ID:                u.ID.String(),
		Email:             u.Email,
		Username:          u.Username,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Bio:               u.Bio,
		Location:          u.Location,
		Website:           u.Website,
		ProfilePictureURL: u.ProfilePictureURL,
		IsVerified:        u.IsVerified,
		IsActive:          u.IsActive,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func (u *User) Summary() domain.UserSummary {
	return domain.UserSummary{
		ID:                u.ID.String(),
		Username:          u.Username,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

func (r *Recipe) ToDomain() domain.Recipe {
	return domain.Recipe{
		ID:            r.ID.String(),
		UserID:        r.UserID.String(),
		Title:         r.Title,
		Description:   r.Description,
		ImageURL:      r.ImageURL,
		PrepTime:      r.PrepTime,
		CookTime:      r.CookTime,
		TotalTime:     r.TotalTime,
		Servings:      r.Servings,
		Cuisine:       r.Cuisine,
		Difficulty:    r.Difficulty,
		DietaryTags:   r.TagNames(),
		IsPublished:   r.IsPublished,
		IsFeatured:    r.IsFeatured,
		ViewCount:     r.ViewCount,
		LikeCount:     r.LikeCount,
		AverageRating: r.AverageRating,
		TotalRatings:  r.TotalRatings,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *Recipe) Summary() domain.RecipeSummary {
	return domain.RecipeSummary{ID: r.ID.String(), Title: r.Title, ImageURL: r.ImageURL}
}

func RecipesToDomain(recipes []Recipe) []domain.Recipe {
	out := make([]domain.Recipe, 0, len(recipes))
	for i := range recipes {
		out = append(out, recipes[i].ToDomain())
	}
	return out
}

func (i *Ingredient) ToDomain() domain.Ingredient {
	return domain.Ingredient{
		ID:         i.ID.String(),
		Name:       i.Name,
		Quantity:   i.Quantity,
		Unit:       i.Unit,
		Notes:      i.Notes,
		OrderIndex: i.OrderIndex,
	}
}

func (i *Instruction) ToDomain() domain.Instruction {
	return domain.Instruction{
		ID:           i.ID.String(),
		StepNumber:   i.StepNumber,
		Description:  i.Description,
		ImageURL:     i.ImageURL,
		TimeEstimate: i.TimeEstimate,
	}
}

// ToDomain includes the user and recipe summaries when they were preloaded.
func (r *Review) ToDomain() domain.Review {
	out := domain.Review{
		ID:         r.ID.String(),
		UserID:     r.UserID.String(),
		RecipeID:   r.RecipeID.String(),
		Rating:     r.Rating,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.User != nil {
		summary := r.User.Summary()
		out.User = &summary
	}
	if r.Recipe != nil {
		summary := r.Recipe.Summary()
		out.Recipe = &summary
	}
	return out
}

func ReviewsToDomain(reviews []Review) []domain.Review {
	out := make([]domain.Review, 0, len(reviews))
	for i := range reviews {
		out = append(out, reviews[i].ToDomain())
	}
	return out
}
