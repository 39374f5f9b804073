// Package locations управляет опубликованными местами («dog-friendly places»).
// models.go описывает структуру локации и фильтр поиска.
package locations

import (
	"strings"

	"serotonyl.ru/dogspots/internal/common"
)

// Известные категории. Набор открытый: система не запрещает другие значения.
const (
	CategoryRestaurant = "restaurant"
	CategoryCafe       = "cafe"
	CategoryPark       = "park"
	CategoryShop       = "shop"
)

// Location — опубликованное место, видимое пользователям.
type Location struct {
	ID            int64   `json:"id" db:"id"`                        // Назначается хранилищем, неизменяем
	Name          string  `json:"name" db:"name"`                    // Название
	Description   string  `json:"description" db:"description"`      // Описание
	Category      string  `json:"category" db:"category"`            // restaurant, cafe, park, shop, ...
	Address       string  `json:"address" db:"address"`              // Адрес
	Latitude      float64 `json:"latitude" db:"latitude"`            // Широта
	Longitude     float64 `json:"longitude" db:"longitude"`          // Долгота
	Rating        float64 `json:"rating" db:"rating"`                // 0–5 по соглашению, не проверяется
	ReviewCount   int     `json:"reviewCount" db:"review_count"`     // Количество отзывов (>= 0)
	ImageURL      string  `json:"imageUrl" db:"image_url"`           // Картинка
	Features      string  `json:"features" db:"features"`            // Теги через запятую
	DistanceMiles float64 `json:"distanceMiles" db:"distance_miles"` // Подсказка для отображения
}

// FeatureList возвращает особенности локации списком.
func (l *Location) FeatureList() []string {
	return common.SplitFeatures(l.Features)
}

// Filter — параметры выборки локаций. Пустые поля не ограничивают выборку.
type Filter struct {
	Category  string  // Точное совпадение категории (без учёта регистра)
	Query     string  // Подстрока в name/description/category/address/features
	MinRating float64 // Минимальный рейтинг
}

// Match проверяет, подходит ли локация под фильтр.
// Используется in-memory хранилищем; SQL-версия в repository.go повторяет ту же логику.
func (f Filter) Match(l *Location) bool {
	if f.Category != "" && !strings.EqualFold(l.Category, f.Category) {
		return false
	}
	if f.MinRating > 0 && l.Rating < f.MinRating {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		return common.ContainsFold(l.Name, q) ||
			common.ContainsFold(l.Description, q) ||
			common.ContainsFold(l.Category, q) ||
			common.ContainsFold(l.Address, q) ||
			common.ContainsFold(l.Features, q)
	}
	return true
}
