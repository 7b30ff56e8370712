package services

import "math"

// Пороговые значения K-фактора по суммарному игровому времени.
// Чем больше наиграно часов, тем меньше один матч двигает рейтинг.
func kFactor(hoursPlayed int) int {
	switch {
	case hoursPlayed < 500:
		return 50
	case hoursPlayed < 1000:
		return 40
	case hoursPlayed < 3000:
		return 30
	case hoursPlayed < 5000:
		return 20
	default:
		return 10
	}
}

// expectedScore — классическая формула ожидаемого результата Эло.
// https://calculator.academy/elo-rating-calculator/
func expectedScore(elo, opponentElo int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponentElo-elo)/400.0))
}

// UpdateRating вычисляет новый рейтинг игрока после матча.
//
// score — фактический результат: 1.0 победа, 0.5 ничья, 0.0 поражение.
// hoursPlayedAfterMatch — суммарное время игрока УЖЕ с учётом длительности
// этого матча: K-фактор считается от итогового времени, не от времени до матча.
//
// Возвращает новый рейтинг (округление до ближайшего целого, половина — от нуля)
// и применённый K-фактор. Функция чистая, валидация входа — на вызывающей стороне.
func UpdateRating(elo, opponentAvgElo int, score float64, hoursPlayedAfterMatch int) (int, int) {
	e := expectedScore(elo, opponentAvgElo)
	k := kFactor(hoursPlayedAfterMatch)
	newElo := int(math.Round(float64(elo) + float64(k)*(score-e)))
	return newElo, k
}

// teamAverageElo — среднее по целочисленному делению, как в таблице лидеров.
// Ростер не может быть пустым.
func teamAverageElo(players []int) int {
	sum := 0
	for _, elo := range players {
		sum += elo
	}
	return sum / len(players)
}
