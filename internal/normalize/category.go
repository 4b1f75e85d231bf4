package normalize

import "strings"

const DefaultCategory = "Разное"

var categoryNames = map[string]string{
	"themes":     "Тематика",
	"creativity": "Творчество",
	"politics":   "Политика",
	"tech":       "Техника и софт",
	"games":      "Игры",
	"japan":      "Японская культура",
	"misc":       DefaultCategory,
	"adult":      "Взрослым",
	"users":      "Пользовательские",
}

var localizedCategories = func() map[string]struct{} {
	m := make(map[string]struct{}, len(categoryNames))
	for _, v := range categoryNames {
		m[v] = struct{}{}
	}
	return m
}()

// Category localizes an upstream category code. Localized names pass
// through unchanged, unknown ones become DefaultCategory.
func Category(c string) string {
	c = strings.TrimSpace(c)
	if _, ok := localizedCategories[c]; ok {
		return c
	}
	if name, ok := categoryNames[strings.ToLower(c)]; ok {
		return name
	}
	return DefaultCategory
}
