package model

// DefaultCategory is used when a draft does not name a category.
const DefaultCategory = "Entertainment"

// FormCategories are the categories offered by the add form.
var FormCategories = []string{
	"Entertainment",
	"Software",
	"Utilities",
	"Shopping",
}
