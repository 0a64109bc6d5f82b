// Package util provides common utility functions used across the
// oauth-compliance library. These utilities handle string manipulation and
// host normalization shared by the rule evaluator and the metadata prober.
package util
