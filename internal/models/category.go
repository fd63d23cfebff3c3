package models

import (
	"fmt"
	"strings"
)

// Category is the closed set of subjects a reveal can be tagged with.
type Category string

const (
	CategoryAnimal     Category = "ANIMAL"
	CategoryArt        Category = "ART"
	CategoryBuilding   Category = "BUILDING"
	CategoryCartoon    Category = "CARTOON"
	CategoryCooking    Category = "COOKING"
	CategoryCity       Category = "CITY"
	CategoryClothing   Category = "CLOTHING"
	CategoryCountry    Category = "COUNTRY"
	CategoryFood       Category = "FOOD"
	CategoryGame       Category = "GAME"
	CategoryInstrument Category = "INSTRUMENT"
	CategoryMovie      Category = "MOVIE"
	CategoryMusic      Category = "MUSIC"
	CategoryPerson     Category = "PERSON"
	CategoryPlant      Category = "PLANT"
	CategorySports     Category = "SPORTS"
	CategoryTool       Category = "TOOL"
	CategoryVehicle    Category = "VEHICLE"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryAnimal, CategoryArt, CategoryBuilding, CategoryCartoon,
	CategoryCooking, CategoryCity, CategoryClothing, CategoryCountry,
	CategoryFood, CategoryGame, CategoryInstrument, CategoryMovie,
	CategoryMusic, CategoryPerson, CategoryPlant, CategorySports,
	CategoryTool, CategoryVehicle,
}

var categoryDisplayNames = map[Category]string{
	CategoryAnimal:     "Animal",
	CategoryArt:        "Art",
	CategoryBuilding:   "Building",
	CategoryCartoon:    "Cartoon",
	CategoryCooking:    "Cooking",
	CategoryCity:       "City",
	CategoryClothing:   "Clothing",
	CategoryCountry:    "Country",
	CategoryFood:       "Food",
	CategoryGame:       "Game",
	CategoryInstrument: "Instrument",
	CategoryMovie:      "Movie",
	CategoryMusic:      "Music",
	CategoryPerson:     "Person",
	CategoryPlant:      "Plant",
	CategorySports:     "Sports",
	CategoryTool:       "Tool",
	CategoryVehicle:    "Vehicle",
}

// ParseCategory converts a wire value into a Category, rejecting unknown values.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categoryDisplayNames[c]; !ok {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// DisplayName returns the human-readable name for the category.
// The mapping is total over the enum; unknown values fall back to the raw tag.
func (c Category) DisplayName() string {
	if name, ok := categoryDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	_, ok := categoryDisplayNames[c]
	return ok
}
