package timing

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestTimeStampArithmetic(t *testing.T) {
	ts := FromMillis(1000)

	later, err := ts.Add(FromSeconds(2))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if later.Millis() != 3000 {
		t.Errorf("expected 3000, got %d", later.Millis())
	}

	span, err := later.Sub(ts)
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if span != FromSeconds(2) {
		t.Errorf("expected 2000ms, got %d", span.Millis())
	}

	earlier, err := ts.Add(-Second)
	if err != nil {
		t.Fatalf("add negative: %v", err)
	}
	if earlier.Millis() != 0 {
		t.Errorf("expected 0, got %d", earlier.Millis())
	}
}

func TestTimeStampAddOverflow(t *testing.T) {
	ts := FromMillis(math.MaxInt64)
	if _, err := ts.Add(Millisecond); !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("expected ErrDurationOverflow, got %v", err)
	}

	ts = FromMillis(math.MinInt64)
	if _, err := ts.Add(-Millisecond); !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("expected ErrDurationOverflow, got %v", err)
	}
}

func TestTimeStampSubOverflow(t *testing.T) {
	if _, err := FromMillis(math.MaxInt64).Sub(FromMillis(-1)); !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("expected ErrDurationOverflow, got %v", err)
	}
	if _, err := FromMillis(0).Sub(FromMillis(math.MinInt64)); !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("expected ErrDurationOverflow, got %v", err)
	}
}

func TestDurationArithmetic(t *testing.T) {
	d, err := Minute.Add(FromSeconds(30))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if d.Millis() != 90000 {
		t.Errorf("expected 90000, got %d", d.Millis())
	}

	d, err = d.Sub(Minute)
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if d != FromSeconds(30) {
		t.Errorf("expected 30s, got %v", d)
	}

	d, err = Second.Mul(120)
	if err != nil {
		t.Fatalf("mul: %v", err)
	}
	if d != FromMinutes(2) {
		t.Errorf("expected 2m, got %v", d)
	}

	d, err = Minute.Div(6)
	if err != nil {
		t.Fatalf("div: %v", err)
	}
	if d != FromSeconds(10) {
		t.Errorf("expected 10s, got %v", d)
	}
}

func TestDurationMulOverflow(t *testing.T) {
	if _, err := Duration(math.MaxInt64).Mul(2); !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("expected ErrDurationOverflow, got %v", err)
	}
	if _, err := Duration(math.MinInt64).Mul(-1); !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("expected ErrDurationOverflow, got %v", err)
	}
}

func TestDurationDivOverflow(t *testing.T) {
	if _, err := Duration(math.MinInt64).Div(-1); !errors.Is(err, ErrDurationOverflow) {
		t.Errorf("expected ErrDurationOverflow, got %v", err)
	}
}

func TestAlignDown(t *testing.T) {
	cases := []struct {
		ts       int64
		interval Duration
		want     int64
	}{
		{1500, Second, 1000},
		{2000, Second, 2000},
		{999, Second, 0},
		{0, Second, 0},
		{-1, Second, -1000},
		{-1000, Second, -1000},
		{-1500, Second, -2000},
	}

	for _, c := range cases {
		got := FromMillis(c.ts).AlignDown(c.interval)
		if got.Millis() != c.want {
			t.Errorf("AlignDown(%d, %d): expected %d, got %d",
				c.ts, c.interval.Millis(), c.want, got.Millis())
		}
	}
}

func TestTimeBridging(t *testing.T) {
	now := time.Now().Truncate(time.Millisecond)
	ts := FromTime(now)

	if !ts.Time().Equal(now) {
		t.Errorf("expected %v, got %v", now, ts.Time())
	}
	if ts.Millis() != now.UnixMilli() {
		t.Errorf("expected %d, got %d", now.UnixMilli(), ts.Millis())
	}
}

func TestDurationString(t *testing.T) {
	if s := FromSeconds(90).String(); s != "90.000s" {
		t.Errorf("expected 90.000s, got %s", s)
	}
	if s := Duration(1234).String(); s != "1.234s" {
		t.Errorf("expected 1.234s, got %s", s)
	}
}
