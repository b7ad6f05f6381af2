//go:build !mobile

// 桌面构建时 mobile 包只剩这个文件：data/ 目录不会被复制到这里，
// embed.go 和 mobile.go 不参与编译，go build ./... 仍然可以通过。
package mobile

// Dummy 与 mobile.go 中的同名函数保持一致
func Dummy() {}
