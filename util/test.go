package util

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func AssertEqual(t *testing.T, expected any, actual any) {
	expectedString, expectedIsString := expected.(string)
	actualString, actualIsString := actual.(string)

	if !reflect.DeepEqual(expected, actual) {
		if expectedIsString && actualIsString {
			assertEqualStrings(t, expectedString, actualString)
		} else {
			sigolo.Errorb(1, "Expect to be equal.\nExpected: %+v\n----------\nActual  : %+v\n", expected, actual)
			t.Fail()
		}
	}
}

// AssertEqualSlices compares the given slices element by element and prints every differing index.
func AssertEqualSlices[T any](t *testing.T, expected []T, actual []T) {
	if reflect.DeepEqual(expected, actual) {
		return
	}

	sigolo.Errorb(1, "Expect slices to be equal (expected %d, actual %d elements).", len(expected), len(actual))
	fmt.Printf("| %-4s | %-45s | %-45s |\n", "#", "Expected", "Actual")
	fmt.Printf("|%s|\n", strings.Repeat("-", 102))

	for i := 0; i < len(expected) || i < len(actual); i++ {
		expectedElement := ""
		if i < len(expected) {
			expectedElement = fmt.Sprintf("%+v", expected[i])
		}
		actualElement := ""
		if i < len(actual) {
			actualElement = fmt.Sprintf("%+v", actual[i])
		}

		changeMark := " "
		if i >= len(expected) || i >= len(actual) || !reflect.DeepEqual(expected[i], actual[i]) {
			changeMark = "*"
		}

		fmt.Printf("| %s%3d | %-45s | %-45s |\n", changeMark, i, expectedElement, actualElement)
	}

	t.Fail()
}

func assertEqualStrings(t *testing.T, expected string, actual string) {
	expected = strings.ReplaceAll(expected, "\n", "\\n\n")

	actual = strings.ReplaceAll(actual, "\n", "\\n\n")

	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	sigolo.Errorb(2, "Expect to be equal.\n|   | %-50s | %-50s |", "Expected", "Actual")
	fmt.Printf("|%s|\n", strings.Repeat("-", 109))

	for i, expectedLine := range expectedLines {
		actualLine := ""
		if len(actualLines) > i {
			actualLine = actualLines[i]
		}

		changeMark := " "
		if actualLine != expectedLine {
			changeMark = "*"
		}

		fmt.Printf("| %s | %-50s | %-50s |\n", changeMark, "\""+expectedLine+"\"", "\""+actualLine+"\"")
	}

	if len(actualLines) > len(expectedLines) {
		for i := len(expectedLines); i < len(actualLines); i++ {
			actualLine := actualLines[i]
			fmt.Printf("| * | %-50s | %-50s |\n", "", "\""+actualLine+"\"")
		}
	}

	t.Fail()
}

func AssertNil(t *testing.T, value any) {
	if value != nil && !reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect to be 'nil' but was: %#v", value)
		t.Fail()
	}
}

func AssertNotNil(t *testing.T, value any) {
	if value == nil || reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect NOT to be 'nil' but was: %#v", value)
		t.Fail()
	}
}

func AssertError(t *testing.T, expectedMessage string, err error) {
	if err == nil {
		sigolo.Errorb(1, "Expected error with message: %s\nActual error: nil", expectedMessage)
		t.Fail()
		return
	}
	if expectedMessage != err.Error() {
		sigolo.Errorb(1, "Expected message: %s\nActual error message: %s", expectedMessage, err.Error())
		t.Fail()
	}
}

func AssertErrorContains(t *testing.T, expectedPart string, err error) {
	if err == nil || !strings.Contains(err.Error(), expectedPart) {
		sigolo.Errorb(1, "Expected error containing: %s\nActual error: %v", expectedPart, err)
		t.Fail()
	}
}

func AssertTrue(t *testing.T, b bool) {
	if !b {
		sigolo.Errorb(1, "Expected true but got false")
		t.Fail()
	}
}

func AssertFalse(t *testing.T, b bool) {
	if b {
		sigolo.Errorb(1, "Expected false but got true")
		t.Fail()
	}
}

func AssertMatch(t *testing.T, regexString string, content string) {
	regex := regexp.MustCompile(regexString)
	if !regex.MatchString(content) {
		sigolo.Errorb(1, "Expected to match\nRegex: %s\nContent: %s", regexString, content)
		t.Fail()
	}
}
