package main

import (
	"bytes"
	"testing"
)

func TestRun(t *testing.T) {
	cases := []struct {
		args []string
		code int
		out  string
	}{
		{[]string{"2^3"}, exitSuccess, "8\n"},
		{[]string{"sqrt(16)"}, exitSuccess, "4.0\n"},
		{[]string{"-5+3"}, exitSuccess, "-2\n"},
		{[]string{"--5"}, exitSuccess, "5\n"},
		{[]string{"10 / 4"}, exitSuccess, "2.5\n"},
		{[]string{"max(1, 2) == 2"}, exitSuccess, "True\n"},
		{[]string{"1/0"}, exitFailure, "Error: error evaluating expression: division by zero\n"},
		{[]string{"import os"}, exitFailure, "Error: potentially unsafe expression detected\n"},
		{[]string{"2+importish"}, exitFailure, "Error: potentially unsafe expression detected\n"},
		{[]string{"--help"}, exitFailure, "Error: potentially unsafe expression detected\n"},
		{[]string{"foo"}, exitFailure, "Error: error evaluating expression: name 'foo' is not defined\n"},
		{nil, exitFailure, "Error: please provide a mathematical expression\n"},
		{[]string{"1", "2"}, exitFailure, "Error: please provide a mathematical expression\n"},
	}
	for _, tc := range cases {
		var stdout, stderr bytes.Buffer
		code := run(tc.args, &stdout, &stderr)
		if code != tc.code {
			t.Fatalf("%q: expected exit %d, got %d", tc.args, tc.code, code)
		}
		if stdout.String() != tc.out {
			t.Fatalf("%q: unexpected output %q", tc.args, stdout.String())
		}
		if stderr.Len() != 0 {
			t.Fatalf("%q: unexpected stderr %q", tc.args, stderr.String())
		}
	}
}
