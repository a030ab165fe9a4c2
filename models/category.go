package models

import (
	"encoding/json"
	"strings"
)

// 支出类别常量
const (
	CategoryOfficeRent     = "Office Rent"
	CategoryUtilities      = "Utilities"
	CategoryMarketing      = "Marketing"
	CategoryTransportation = "Transportation"
	CategoryOfficeSupplies = "Office Supplies"
	CategoryCommunication  = "Communication"
	CategorySalary         = "Salary"
	CategoryOther          = "Other"
)

// GetCategories 获取所有预设支出类别
func GetCategories() []string {
	return []string{
		CategoryOfficeRent,
		CategoryUtilities,
		CategoryMarketing,
		CategoryTransportation,
		CategoryOfficeSupplies,
		CategoryCommunication,
		CategorySalary,
		CategoryOther,
	}
}

// IsKnownCategory 是否为预设类别（不含 Other）
func IsKnownCategory(name string) bool {
	for _, c := range GetCategories() {
		if c == name && c != CategoryOther {
			return true
		}
	}
	return false
}

// Category 支出类别：预设类别或自定义文本（选择 Other 后填写）
// 持久化时只保存名称字符串
type Category struct {
	name   string
	custom bool
}

// Known 预设类别
func Known(name string) Category {
	return Category{name: name}
}

// Custom 自定义类别
func Custom(text string) Category {
	return Category{name: strings.TrimSpace(text), custom: true}
}

// ResolveCategory 根据表单选择与自定义文本得到类别
// 选择 Other 时使用自定义文本，文本与预设类别同名时按预设类别处理；自定义文本为空返回 false
func ResolveCategory(selected, other string) (Category, bool) {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return Category{}, false
	}
	if selected == CategoryOther {
		other = strings.TrimSpace(other)
		if other == "" {
			return Category{}, false
		}
		if IsKnownCategory(other) {
			return Known(other), true
		}
		return Custom(other), true
	}
	if IsKnownCategory(selected) {
		return Known(selected), true
	}
	return Custom(selected), true
}

// Name 类别名称
func (c Category) Name() string {
	return c.name
}

// IsCustom 是否为自定义类别
func (c Category) IsCustom() bool {
	return c.custom
}

func (c Category) String() string {
	return c.name
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.name)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if IsKnownCategory(s) {
		*c = Known(s)
	} else {
		*c = Custom(s)
	}
	return nil
}
