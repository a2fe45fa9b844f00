package fixtures

import (
	"fmt"
	"math/rand"
)

// GroupDrawDistributor проводит жеребьёвку: случайно раскладывает заявки
// по группам так, что размеры любых двух групп отличаются не более чем
// на единицу.
//
// Повторная жеребьёвка уже распределённых заявок не отслеживается -
// вызывающая сторона передаёт только нераспределённые заявки и сама
// подтверждает разрушительный пере-розыгрыш.
type GroupDrawDistributor struct {
	rnd *rand.Rand
}

// NewGroupDrawDistributor принимает источник случайности, чтобы тесты
// могли фиксировать сид и проверять детерминированный результат.
func NewGroupDrawDistributor(rnd *rand.Rand) *GroupDrawDistributor {
	return &GroupDrawDistributor{rnd: rnd}
}

// Distribute возвращает отображение groupID -> заявки. Заявки
// перемешиваются (Fisher–Yates) и раздаются по кругу: i-я заявка в
// группу i mod len(groupIDs). Заявок меньше, чем групп - не ошибка,
// часть групп остаётся пустой.
func (d *GroupDrawDistributor) Distribute(registrationIDs []int, groupIDs []int) (map[int][]int, error) {
	if len(groupIDs) == 0 {
		return nil, fmt.Errorf("%w: got 0 groups", ErrInvalidGroupConfig)
	}

	shuffled := make([]int, len(registrationIDs))
	copy(shuffled, registrationIDs)
	d.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	result := make(map[int][]int, len(groupIDs))
	for _, groupID := range groupIDs {
		result[groupID] = []int{}
	}
	for i, registrationID := range shuffled {
		groupID := groupIDs[i%len(groupIDs)]
		result[groupID] = append(result[groupID], registrationID)
	}

	return result, nil
}
