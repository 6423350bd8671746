package gotick

import "fmt"

func ptrString(v any) string { return fmt.Sprintf("%p", v) }
