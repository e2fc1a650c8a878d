package adtools

import (
	"encoding/json"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCleanJSONResponse(t *testing.T) {
	Convey("CleanJSONResponse 能剥掉围栏和解说文字", t, func() {
		Convey("带语言标注的代码围栏", func() {
			got := CleanJSONResponse("```json\n{\"a\": 1}\n```")
			So(got, ShouldEqual, `{"a": 1}`)
		})

		Convey("不带语言标注的代码围栏", func() {
			got := CleanJSONResponse("```\n{\"a\": 1}\n```")
			So(got, ShouldEqual, `{"a": 1}`)
		})

		Convey("JSON 前后的解说文字被裁掉", func() {
			got := CleanJSONResponse("Here is the universe you asked for:\n{\"a\": 1}\nLet me know if you need changes.")
			So(got, ShouldEqual, `{"a": 1}`)
		})

		Convey("干净输入原样返回", func() {
			So(CleanJSONResponse(`{"a": 1}`), ShouldEqual, `{"a": 1}`)
		})
	})
}

func TestRepairJSON(t *testing.T) {
	Convey("RepairJSON 能修复常见的坏形态", t, func() {
		Convey("尾随逗号", func() {
			got := RepairJSON(`{"scenes": [1, 2,],}`)
			So(json.Valid([]byte(got)), ShouldBeTrue)
			So(got, ShouldEqual, `{"scenes": [1, 2]}`)
		})

		Convey("行注释与块注释", func() {
			input := "{\n// scene list\n\"a\": 1\n/* trailing note */\n}"
			got := RepairJSON(input)
			So(json.Valid([]byte(got)), ShouldBeTrue)
			So(got, ShouldNotContainSubstring, "scene list")
			So(got, ShouldNotContainSubstring, "trailing note")
		})

		Convey("相邻字段之间缺逗号", func() {
			input := "{\"a\": \"x\"\n\"b\": \"y\"}"
			got := RepairJSON(input)
			So(json.Valid([]byte(got)), ShouldBeTrue)
		})

		Convey("相邻对象之间缺逗号", func() {
			input := "[{\"a\": 1}\n{\"b\": 2}]"
			got := RepairJSON(input)
			So(json.Valid([]byte(got)), ShouldBeTrue)
		})
	})
}

func TestExtractJSON(t *testing.T) {
	Convey("ExtractJSON 提取可解析的 JSON 字节", t, func() {
		Convey("合法输入直通", func() {
			data, err := ExtractJSON(`{"characters": []}`)
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, `{"characters": []}`)
		})

		Convey("围栏加尾随逗号也能救回来", func() {
			data, err := ExtractJSON("```json\n{\"scenes\": [1, 2,],}\n```")
			So(err, ShouldBeNil)
			So(json.Valid(data), ShouldBeTrue)
		})

		Convey("修复后仍然解析不了要报 ErrJSONUnparseable", func() {
			_, err := ExtractJSON(`{"a": [1, 2`)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrJSONUnparseable), ShouldBeTrue)
		})
	})
}
