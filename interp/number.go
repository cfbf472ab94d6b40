package interp

import (
	"math"
	"strconv"
)

// Number is a runtime value: either an INTEGER or a REAL.
type Number struct {
	real bool
	i    int64
	f    float64
}

func Int(i int64) Number {
	return Number{i: i}
}

func Real(f float64) Number {
	return Number{real: true, f: f}
}

func (n Number) IsReal() bool {
	return n.real
}

func (n Number) Float64() float64 {
	if n.real {
		return n.f
	}
	return float64(n.i)
}

// Int64 returns the integer value, truncating REAL values toward zero.
func (n Number) Int64() int64 {
	if n.real {
		return int64(n.f)
	}
	return n.i
}

func (n Number) isFinite() bool {
	return !n.real || !(math.IsInf(n.f, 0) || math.IsNaN(n.f))
}

func (n Number) String() string {
	if n.real {
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}

// Interface returns the value as an int64 or a float64.
func (n Number) Interface() interface{} {
	if n.real {
		return n.f
	}
	return n.i
}

func (n Number) MarshalYAML() (interface{}, error) {
	return n.Interface(), nil
}

func numberFromLiteral(v interface{}) (Number, bool) {
	switch x := v.(type) {
	case int64:
		return Int(x), true
	case float64:
		return Real(x), true
	}
	return Number{}, false
}
