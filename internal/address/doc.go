// Package address defines the resolved postal address record.
//
// A Record is built from a directory response and never changed afterwards.
// Valid is the single gate between a response and a "found" result: a record
// with any blank core field (postal code, street, city, district, state) is a
// miss, even when the directory answered with a success status.
package address
