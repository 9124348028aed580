// Package collation provides the single locale-aware string ordering used
// for every display string in tunesort.
//
//	c := collation.Default()
//	c.Compare("Zebra", "阿")  // -1: Latin before Han
//	c.Compare("阿", "あ")     // -1: Han before Kana
//	c.Compare("北京", "中国") // -1: pinyin order within Han
//
// Titles, albums and artist names must always go through the same Collator
// so that two strings compare identically at every call site.
package collation
