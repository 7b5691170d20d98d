package domain

type AppStatistics struct {
	TotalRecipes      int64 `json:"total_recipes"`
	TotalUsers        int64 `json:"total_users"`
	TotalCuisineTypes int64 `json:"total_cuisine_types"`
}
