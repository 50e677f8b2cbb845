package models

import (
	"encoding/json"
)

// AnimeComment комментарий к аниме (новые в начале списка)
type AnimeComment struct {
	UserID        FlexInt `json:"userId"`
	ReviewComment string  `json:"reviewComment"`
	Rating        FlexInt `json:"rating"`
	Avatar        string  `json:"avatar"`
	Date          string  `json:"date"`
}

// Anime документ аниме. Записи создаются снаружи и содержат
// произвольный набор полей (title, cover, genres и т.д.), а каждое
// обновление перезаписывает документ целиком — поэтому неизвестные
// поля сохраняются в extra и возвращаются при маршалинге как есть.
type Anime struct {
	ID       string
	Comments []AnimeComment

	extra map[string]json.RawMessage
}

func (a *Anime) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &a.ID); err != nil {
			return err
		}
		delete(raw, "id")
	}
	if v, ok := raw["comments"]; ok {
		if err := json.Unmarshal(v, &a.Comments); err != nil {
			return err
		}
		delete(raw, "comments")
	}
	a.extra = raw
	return nil
}

func (a Anime) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(a.extra)+2)
	for k, v := range a.extra {
		out[k] = v
	}
	id, err := json.Marshal(a.ID)
	if err != nil {
		return nil, err
	}
	out["id"] = id

	comments := a.Comments
	if comments == nil {
		comments = []AnimeComment{}
	}
	cs, err := json.Marshal(comments)
	if err != nil {
		return nil, err
	}
	out["comments"] = cs

	return json.Marshal(out)
}

// SetExtra задает произвольное поле документа (используется в тестах
// и при сидировании)
func (a *Anime) SetExtra(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if a.extra == nil {
		a.extra = map[string]json.RawMessage{}
	}
	a.extra[key] = raw
	return nil
}
