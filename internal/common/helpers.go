// Package common содержит общие утилиты, используемые во всём проекте.
// Сюда входят: склонение «paw point(s)», форматирование баллов, работа с временем
// и разбор списка особенностей локации.
package common

import (
	"fmt"
	"strings"
	"time"
)

// PluralizePoints возвращает правильную форму для числа n.
//
// Примеры:
//
//	PluralizePoints(1)  → "paw point"
//	PluralizePoints(-1) → "paw point"
//	PluralizePoints(5)  → "paw points"
func PluralizePoints(n int64) string {
	if n == 1 || n == -1 {
		return "paw point"
	}
	return "paw points"
}

// FormatPoints форматирует баланс в читабельную строку.
// Пример: FormatPoints(15) → "15 paw points"
func FormatPoints(points int64) string {
	return fmt.Sprintf("%d %s", points, PluralizePoints(points))
}

// FormatPointsAmount создаёт строку вида "+5 paw points" или "-5 paw points".
// Знак «+» добавляется автоматически.
func FormatPointsAmount(amount int64) string {
	if amount >= 0 {
		return fmt.Sprintf("+%d %s", amount, PluralizePoints(amount))
	}
	return fmt.Sprintf("%d %s", amount, PluralizePoints(amount))
}

// LoadTimezone загружает часовой пояс по имени.
// Если не удалось (нет tzdata в контейнере) — используем UTC.
func LoadTimezone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FormatDateTime форматирует время в формат "02.01.2006 15:04" в указанном поясе.
func FormatDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02.01.2006 15:04")
}

// SplitFeatures разбирает строку особенностей ("Water bowls, Outdoor seating")
// в список тегов без пустых элементов.
func SplitFeatures(features string) []string {
	parts := strings.Split(features, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeFeatures приводит строку особенностей к каноничному виду "a, b, c".
func NormalizeFeatures(features string) string {
	return strings.Join(SplitFeatures(features), ", ")
}

// ContainsFold — регистронезависимый поиск подстроки.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
