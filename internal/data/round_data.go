package data

import "fmt"

// roundDistances — дистанции раундов в метрах: от спринта до марафона.
var roundDistances = [...]int{
	100, 200, 300, 400, 500, 700, 900, 1100, 1300, 1500, 1800, 2100, 2400, 2700, 3000,
	3400, 3800, 4200, 4600, 5000, 5500, 6000, 6500, 7000, 7500, 8100, 8700, 9300, 9900, 10500,
	11200, 11900, 12600, 13300, 14000, 14800, 15600, 16400, 17200, 18000, 18900, 19800, 20700,
	21600, 22500, 23500, 24500, 25500, 26500, 27500, 28600, 29700, 30800, 31900, 33000, 34200,
	35400, 36600, 37800, 39000, 40300, 41600, 42195,
}

// TotalRounds is the number of rounds in a full campaign.
const TotalRounds = len(roundDistances)

// RoundDistance returns the race distance in meters for a zero-based level.
func RoundDistance(level int) (int, error) {
	if level < 0 || level >= TotalRounds {
		return 0, fmt.Errorf("round %d out of range [0, %d)", level, TotalRounds)
	}
	return roundDistances[level], nil
}
