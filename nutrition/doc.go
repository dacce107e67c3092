// Package nutrition holds the macronutrient calculator: the closed-form
// formulas (age, Mifflin-St Jeor BMR, activity TDEE, goal adjustment, macro
// split) and the aggregator that runs them over a profile. Everything here is
// pure; persistence lives in the macros package.
package nutrition
