package domain

import "fmt"

// Money is an amount in cents.
type Money int64

// Dollars builds a Money value from whole units.
func Dollars(units int64) Money { return Money(units * 100) }

// Percent returns p percent of m, rounded half up to the nearest cent.
func (m Money) Percent(p int64) Money {
	return Money((int64(m)*p + 50) / 100)
}

// Rate applies a fractional rate expressed in basis points (1/100 of a percent).
func (m Money) Rate(basisPoints int64) Money {
	return Money((int64(m)*basisPoints + 5000) / 10000)
}

// Float returns the amount in whole units.
func (m Money) Float() float64 { return float64(m) / 100 }

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
