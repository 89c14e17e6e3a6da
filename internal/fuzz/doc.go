// Package fuzztests houses Go fuzz harnesses for the pipeline
// (source -> lexer -> parser -> resolver -> evaluator). They guard against
// panics and hangs on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
