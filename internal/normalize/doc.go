// Package normalize holds the value rules shared by the registry loaders:
// header canonicalization, phone area codes, tax IDs, postal codes, money,
// dates and activity codes. Every function is pure.
package normalize
