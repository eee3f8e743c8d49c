// Package validator checks command trees for wiring mistakes.
package validator
