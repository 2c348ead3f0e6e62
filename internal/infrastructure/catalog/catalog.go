package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/internal/domain/repository"
)

type fileCatalog struct {
	products []entity.Product
	byID     map[string]int
}

// Load reads the product catalog from a JSON file. When the path is
// empty or the file does not exist, the seeded default menu is used so
// a fresh install can sell immediately.
func Load(path string) (repository.ProductCatalog, error) {
	products := defaultMenu()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var loaded []entity.Product
			if err := json.Unmarshal(data, &loaded); err != nil {
				return nil, fmt.Errorf("catalog: malformed catalog file %s: %w", path, err)
			}
			products = loaded
		case os.IsNotExist(err):
			// Fall through to the seeded menu.
		default:
			return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
		}
	}

	c := &fileCatalog{
		products: products,
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

func (c *fileCatalog) List() []entity.Product {
	out := make([]entity.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *fileCatalog) Get(id string) (*entity.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	p := c.products[i]
	return &p, true
}

// defaultMenu is the seeded fast-food menu. Prices in centavos.
func defaultMenu() []entity.Product {
	return []entity.Product{
		{ID: "1", Name: "X-Tudo Monstro", Price: 3290, Category: "Lanches"},
		{ID: "2", Name: "X-Bacon Crocante", Price: 2650, Category: "Lanches"},
		{ID: "3", Name: "Combo To Frito (Burguer+Batata+Refri)", Price: 4500, Category: "Combos"},
		{ID: "4", Name: "Batata Frita Suprema (Cheddar/Bacon)", Price: 2200, Category: "Porções"},
		{ID: "5", Name: "Coxinha de Frango", Price: 850, Category: "Salgados"},
		{ID: "6", Name: "Pastel de Carne", Price: 900, Category: "Salgados"},
		{ID: "7", Name: "Refrigerante Lata 350ml", Price: 600, Category: "Bebidas"},
		{ID: "8", Name: "Suco Natural Laranja", Price: 1200, Category: "Bebidas"},
		{ID: "9", Name: "Açaí Completo 500ml", Price: 1800, Category: "Sobremesas"},
		{ID: "10", Name: "Nuggets (10 unid)", Price: 1590, Category: "Porções"},
		{ID: "11", Name: "Hot Dog Especial", Price: 1450, Category: "Lanches"},
		{ID: "12", Name: "Água Mineral", Price: 400, Category: "Bebidas"},
	}
}
