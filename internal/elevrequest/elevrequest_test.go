package elevrequest

import (
	"errors"
	"testing"

	"github.com/dinaMadelen/elevator-dispatch/internal/elevconsts"
)

func TestNewInternalDerivesDirection(t *testing.T) {
	requestArray := []Request{
		NewInternal(2, 3),
		NewInternal(5, 1),
		NewInternal(4, 4),
	}
	directionArray := []elevconsts.Direction{elevconsts.Up, elevconsts.Down, elevconsts.Down}

	for index, request := range requestArray {
		if request.Direction() != directionArray[index] {
			t.Errorf("%v.Direction() = %v, expected %v", request, request.Direction(), directionArray[index])
		}
		if request.Kind != Internal {
			t.Errorf("%v.Kind = %v, expected %v", request, request.Kind, Internal)
		}
	}
}

func TestRequestedFloor(t *testing.T) {
	external := NewExternal(8, elevconsts.Down)
	if external.RequestedFloor() != 8 {
		t.Errorf("External RequestedFloor() = %d, expected 8", external.RequestedFloor())
	}
	if external.Direction() != elevconsts.Down {
		t.Errorf("External Direction() = %v, expected %v", external.Direction(), elevconsts.Down)
	}

	internal := NewInternal(2, 9)
	if internal.RequestedFloor() != 9 {
		t.Errorf("Internal RequestedFloor() = %d, expected 9", internal.RequestedFloor())
	}
}

func TestValidate(t *testing.T) {
	floorCount := 10

	valid := []Request{
		NewExternal(0, elevconsts.Up),
		NewExternal(10, elevconsts.Down),
		NewInternal(3, 10),
		NewInternal(10, 0),
		NewInternal(42, 5), // only the requested floor is checked
	}
	for _, request := range valid {
		if err := request.Validate(floorCount); err != nil {
			t.Errorf("%v.Validate() = %v, expected nil", request, err)
		}
	}

	invalid := []Request{
		NewExternal(11, elevconsts.Up),
		NewExternal(-1, elevconsts.Up),
		NewInternal(2, 11),
		NewInternal(2, -3),
	}
	for _, request := range invalid {
		err := request.Validate(floorCount)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("%v.Validate() = %v, expected %v", request, err, ErrInvalidRequest)
		}
	}
}

func TestString(t *testing.T) {
	if NewExternal(2, elevconsts.Up).String() != "External(2, Up)" {
		t.Errorf("String() = %s, expected External(2, Up)", NewExternal(2, elevconsts.Up).String())
	}
	if NewInternal(2, 3).String() != "Internal(2 -> 3, Up)" {
		t.Errorf("String() = %s, expected Internal(2 -> 3, Up)", NewInternal(2, 3).String())
	}
}

func TestParse(t *testing.T) {
	inputArray := []string{"ext:2:up", "EXT:8:Down", " int:2:3 ", "internal:6:1"}
	requestArray := []Request{
		NewExternal(2, elevconsts.Up),
		NewExternal(8, elevconsts.Down),
		NewInternal(2, 3),
		NewInternal(6, 1),
	}

	for index, input := range inputArray {
		request, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q) returned error %v", input, err)
			continue
		}
		if request != requestArray[index] {
			t.Errorf("Parse(%q) = %v, expected %v", input, request, requestArray[index])
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	malformed := []string{"", "ext:2", "ext:two:up", "ext:2:sideways", "int:2:three", "lift:1:2", "int:1:2:3"}

	for _, input := range malformed {
		if _, err := Parse(input); !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Parse(%q) = %v, expected %v", input, err, ErrInvalidRequest)
		}
	}
}
