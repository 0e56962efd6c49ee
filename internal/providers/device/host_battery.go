package device

import (
	"context"
	"fmt"
)

// SysfsBattery reads /sys/class/power_supply
type SysfsBattery struct {
	Root string
}

// Battery reports the first supply of type Battery. The battery counts as
// charging while any mains supply is online or the battery says so.
func (s SysfsBattery) Battery(ctx context.Context) (Battery, error) {
	if err := ctx.Err(); err != nil {
		return Battery{}, err
	}

	names, err := entries(s.Root)
	if err != nil {
		return Battery{}, err
	}

	var battery string
	mains := false
	for _, name := range names {
		kind, err := readTrimmed(join(s.Root, name, "type"))
		if err != nil {
			continue
		}
		switch kind {
		case "Battery":
			if battery == "" {
				battery = name
			}
		case "Mains", "USB":
			if online, err := readInt(join(s.Root, name, "online")); err == nil && online == 1 {
				mains = true
			}
		}
	}
	if battery == "" {
		return Battery{}, ErrUnsupported
	}

	dir := join(s.Root, battery)
	level, err := readInt(join(dir, "capacity"))
	if err != nil {
		return Battery{}, fmt.Errorf("read battery capacity: %w", err)
	}
	status, _ := readTrimmed(join(dir, "status"))

	b := Battery{
		Level:    clampPercent(int(level)),
		Charging: mains || status == "Charging" || status == "Full",
	}
	if b.Charging {
		b.ChargingTime = s.chargingTime(dir, status)
	} else {
		b.DischargingTime = s.dischargingTime(dir)
	}
	return b, nil
}

func (s SysfsBattery) chargingTime(dir, status string) *float64 {
	if status == "Full" {
		return seconds(0)
	}
	if v, err := readInt(join(dir, "time_to_full_now")); err == nil && v >= 0 {
		return seconds(float64(v))
	}
	now, errNow := readInt(join(dir, "energy_now"))
	full, errFull := readInt(join(dir, "energy_full"))
	power, errPower := readInt(join(dir, "power_now"))
	if errNow != nil || errFull != nil || errPower != nil || power <= 0 || full < now {
		return nil
	}
	return seconds(float64(full-now) / float64(power) * 3600)
}

func (s SysfsBattery) dischargingTime(dir string) *float64 {
	if v, err := readInt(join(dir, "time_to_empty_now")); err == nil && v >= 0 {
		return seconds(float64(v))
	}
	now, errNow := readInt(join(dir, "energy_now"))
	power, errPower := readInt(join(dir, "power_now"))
	if errNow != nil || errPower != nil || power <= 0 {
		return nil
	}
	return seconds(float64(now) / float64(power) * 3600)
}

func seconds(v float64) *float64 {
	return &v
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
