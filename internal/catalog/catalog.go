package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jagchew1/ireland-cauldron-sub000/internal/engine"
)

// File is the on-disk catalog shape. It stands in for the asset directory
// the original content pipeline scans.
type File struct {
	Ingredients []struct {
		Name  string `yaml:"name"`
		Image string `yaml:"image"`
	} `yaml:"ingredients"`
	Roles []struct {
		Name  string `yaml:"name"`
		Team  string `yaml:"team"`
		Image string `yaml:"image"`
	} `yaml:"roles"`
}

// Load reads a YAML catalog. Missing or unusable content falls back to the
// built-in defaults; game start must never fail on thin assets.
func Load(path string) (engine.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Default(), err
	}
	cat := engine.Catalog{}
	for _, ing := range f.Ingredients {
		if ing.Name == "" {
			continue
		}
		cat.Ingredients = append(cat.Ingredients, engine.IngredientSpec{Name: ing.Name, Image: ing.Image})
	}
	for i, r := range f.Roles {
		if r.Name == "" {
			continue
		}
		team := engine.TeamGood
		if r.Team == "EVIL" {
			team = engine.TeamEvil
		}
		cat.Roles = append(cat.Roles, engine.Role{
			ID:    fmt.Sprintf("%s#%d", r.Name, i),
			Name:  r.Name,
			Team:  team,
			Image: r.Image,
		})
	}
	if len(cat.Ingredients) == 0 {
		return Default(), nil
	}
	return cat, nil
}

// Default is the compiled-in catalog used when no asset file is supplied.
func Default() engine.Catalog {
	cat := engine.Catalog{
		Ingredients: []engine.IngredientSpec{
			{Name: engine.IngredientLavender},
			{Name: engine.IngredientMandrake},
			{Name: engine.IngredientFernleaf},
			{Name: engine.IngredientNightshade},
			{Name: engine.IngredientWolfsbane},
			{Name: engine.IngredientYew},
			{Name: engine.IngredientRue},
		},
	}
	goodNames := []string{"Milkmaid", "Herbalist", "Shepherd", "Apothecary", "Midwife", "Beekeeper", "Forager", "Chandler"}
	evilNames := []string{"Hexen", "Nightcaller", "Bloodbinder", "Ashwife"}
	for i, n := range goodNames {
		cat.Roles = append(cat.Roles, engine.Role{ID: fmt.Sprintf("good#%d", i), Name: n, Team: engine.TeamGood})
	}
	for i, n := range evilNames {
		cat.Roles = append(cat.Roles, engine.Role{ID: fmt.Sprintf("evil#%d", i), Name: n, Team: engine.TeamEvil})
	}
	return cat
}
