// Package docs swagger 文档，内容与 api 包中的 swag 注解一致
// 修改接口注解后执行 swag init 重新生成
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/categories": {
            "get": {"produces": ["application/json"], "tags": ["统计"], "summary": "基础选项", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/clock": {
            "get": {"produces": ["application/json"], "tags": ["系统"], "summary": "当前时间", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/dashboard": {
            "get": {"produces": ["application/json"], "tags": ["统计"], "summary": "仪表盘", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/dashboard/daily": {
            "get": {
                "produces": ["application/json"], "tags": ["统计"], "summary": "逐日统计",
                "parameters": [{"type": "integer", "description": "天数 (1-366)", "name": "days", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/dashboard/monthly": {
            "get": {
                "produces": ["application/json"], "tags": ["统计"], "summary": "逐月统计",
                "parameters": [{"type": "integer", "description": "年份", "name": "year", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/transactions": {
            "get": {
                "produces": ["application/json"], "tags": ["统计"], "summary": "流水账",
                "parameters": [{"type": "string", "description": "记录类型", "name": "kind", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/expenses": {
            "get": {
                "produces": ["application/json"], "tags": ["支出"], "summary": "支出列表",
                "parameters": [
                    {"type": "string", "description": "月份 YYYY-MM", "name": "month", "in": "query"},
                    {"type": "string", "description": "支出类型", "name": "type", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["支出"], "summary": "创建支出",
                "parameters": [{"description": "支出信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ExpenseRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/expenses/{id}": {
            "get": {
                "produces": ["application/json"], "tags": ["支出"], "summary": "获取支出",
                "parameters": [{"type": "integer", "description": "支出ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["支出"], "summary": "更新支出",
                "parameters": [
                    {"type": "integer", "description": "支出ID", "name": "id", "in": "path", "required": true},
                    {"description": "支出信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ExpenseRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/sales": {
            "get": {"produces": ["application/json"], "tags": ["销售"], "summary": "销售列表", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["销售"], "summary": "创建销售",
                "parameters": [{"description": "销售信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SaleRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/sales/{id}": {
            "get": {
                "produces": ["application/json"], "tags": ["销售"], "summary": "获取销售",
                "parameters": [{"type": "integer", "description": "销售ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["销售"], "summary": "更新销售",
                "parameters": [
                    {"type": "integer", "description": "销售ID", "name": "id", "in": "path", "required": true},
                    {"description": "销售信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SaleRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/supplier-payments": {
            "get": {"produces": ["application/json"], "tags": ["供应商付款"], "summary": "供应商付款列表", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["供应商付款"], "summary": "创建供应商付款",
                "parameters": [{"description": "付款信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SupplierPaymentRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/supplier-payments/{id}": {
            "get": {
                "produces": ["application/json"], "tags": ["供应商付款"], "summary": "获取供应商付款",
                "parameters": [{"type": "integer", "description": "付款ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["供应商付款"], "summary": "更新供应商付款",
                "parameters": [
                    {"type": "integer", "description": "付款ID", "name": "id", "in": "path", "required": true},
                    {"description": "付款信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SupplierPaymentRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/staff": {
            "get": {"produces": ["application/json"], "tags": ["员工"], "summary": "员工列表", "responses": {"200": {"description": "OK"}}},
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["员工"], "summary": "创建员工",
                "parameters": [{"description": "员工信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.StaffRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/staff/{id}": {
            "get": {
                "produces": ["application/json"], "tags": ["员工"], "summary": "获取员工",
                "parameters": [{"type": "integer", "description": "员工ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["员工"], "summary": "更新员工",
                "parameters": [
                    {"type": "integer", "description": "员工ID", "name": "id", "in": "path", "required": true},
                    {"description": "员工信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.StaffRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "produces": ["application/json"], "tags": ["员工"], "summary": "删除员工",
                "parameters": [{"type": "integer", "description": "员工ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/salary-payments": {
            "get": {
                "produces": ["application/json"], "tags": ["工资"], "summary": "工资发放列表",
                "parameters": [{"type": "integer", "description": "员工ID", "name": "staffId", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["工资"], "summary": "发放工资",
                "parameters": [{"description": "工资信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SalaryRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/api/v1/salary-payments/{id}": {
            "get": {
                "produces": ["application/json"], "tags": ["工资"], "summary": "获取工资发放记录",
                "parameters": [{"type": "integer", "description": "工资发放ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["工资"], "summary": "更新工资发放",
                "parameters": [
                    {"type": "integer", "description": "工资发放ID", "name": "id", "in": "path", "required": true},
                    {"description": "工资信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.SalaryRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/remarks": {
            "get": {"produces": ["application/json"], "tags": ["备注"], "summary": "备注列表", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/remarks/{kind}/{id}": {
            "get": {
                "produces": ["application/json"], "tags": ["备注"], "summary": "查询备注",
                "parameters": [
                    {"type": "string", "description": "记录类型", "name": "kind", "in": "path", "required": true},
                    {"type": "integer", "description": "记录ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["备注"], "summary": "设置备注",
                "parameters": [
                    {"type": "string", "description": "记录类型", "name": "kind", "in": "path", "required": true},
                    {"type": "integer", "description": "记录ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "delete": {
                "produces": ["application/json"], "tags": ["备注"], "summary": "清除备注",
                "parameters": [
                    {"type": "string", "description": "记录类型", "name": "kind", "in": "path", "required": true},
                    {"type": "integer", "description": "记录ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/v1/preferences/page": {
            "get": {"produces": ["application/json"], "tags": ["偏好"], "summary": "最近浏览页面", "responses": {"200": {"description": "OK"}}},
            "put": {"consumes": ["application/json"], "produces": ["application/json"], "tags": ["偏好"], "summary": "保存最近浏览页面", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/export/csv": {
            "get": {"produces": ["text/csv"], "tags": ["导出"], "summary": "导出 CSV 报表", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/export/excel": {
            "get": {"produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "tags": ["导出"], "summary": "导出 Excel 报表", "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/export/email": {
            "post": {
                "consumes": ["application/json"], "produces": ["application/json"], "tags": ["导出"], "summary": "邮件发送报表",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "429": {"description": "Too Many Requests"}}
            }
        }
    },
    "definitions": {
        "api.ExpenseRequest": {
            "type": "object",
            "required": ["amount", "category", "date"],
            "properties": {
                "category": {"type": "string", "example": "Office Rent"},
                "otherCategory": {"type": "string", "example": "Visa fees"},
                "amount": {"type": "string", "example": "99.99"},
                "date": {"type": "string", "example": "2024-01-15"},
                "description": {"type": "string", "example": "January rent"},
                "receipt": {"type": "string"}
            }
        },
        "api.SaleRequest": {
            "type": "object",
            "required": ["agency", "date", "netRate", "salesRate", "service", "supplier"],
            "properties": {
                "agency": {"type": "string", "example": "Sky Travel"},
                "supplier": {"type": "string", "example": "Air Co"},
                "national": {"type": "string", "example": "PT"},
                "passportNumber": {"type": "string", "example": "P1234567"},
                "service": {"type": "string", "example": "Ticket"},
                "netRate": {"type": "string", "example": "100"},
                "salesRate": {"type": "string", "example": "150"},
                "comment": {"type": "string"},
                "date": {"type": "string", "example": "2024-01-10"},
                "documents": {"type": "array", "items": {"type": "string"}}
            }
        },
        "api.SupplierPaymentRequest": {
            "type": "object",
            "required": ["amount", "date", "supplierName"],
            "properties": {
                "supplierName": {"type": "string", "example": "Air Co"},
                "amount": {"type": "string", "example": "500"},
                "date": {"type": "string", "example": "2024-01-11"},
                "receipt": {"type": "string"}
            }
        },
        "api.StaffRequest": {
            "type": "object",
            "required": ["joinDate", "name", "role", "salary", "staffId"],
            "properties": {
                "name": {"type": "string", "example": "Ana"},
                "staffId": {"type": "string", "example": "S-001"},
                "role": {"type": "string", "example": "Agent"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "joinDate": {"type": "string", "example": "2023-05-01"},
                "salary": {"type": "string", "example": "2000"}
            }
        },
        "api.SalaryRequest": {
            "type": "object",
            "required": ["date", "salaryForMonth", "staffId"],
            "properties": {
                "staffId": {"type": "integer", "example": 1},
                "advanceAmount": {"type": "string", "example": "500"},
                "salaryAmount": {"type": "string"},
                "date": {"type": "string", "example": "2024-01-31"},
                "salaryForMonth": {"type": "string", "example": "2024-01"},
                "description": {"type": "string"},
                "receipt": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "旅行社账本 API",
	Description:      "旅行社记账系统 API，支持支出、销售、供应商付款、员工工资管理，统计看板与报表导出",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
