package models

import (
	"encoding/json"
	"strconv"
)

// FlexInt кастомный тип для числовых полей, которые фронтенд
// может прислать как число или как строку ("2" вместо 2)
type FlexInt int64

func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	var num int64
	if err := json.Unmarshal(data, &num); err != nil {
		// Пробуем как строку, если не число
		var numStr string
		if err2 := json.Unmarshal(data, &numStr); err2 != nil {
			return err // возвращаем первую ошибку
		}
		var err3 error
		num, err3 = strconv.ParseInt(numStr, 10, 64)
		if err3 != nil {
			return err3
		}
	}
	*fi = FlexInt(num)
	return nil
}

func (fi FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int64(fi))
}

func (fi FlexInt) Int64() int64 {
	return int64(fi)
}
