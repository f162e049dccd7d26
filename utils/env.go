package utils

import (
	"campus-navigator/logger"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv 加载 .env 文件，不存在时直接使用系统环境变量
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("未找到 .env 文件，使用系统环境变量")
	}
}

// GetEnvString 获取环境变量，不存在时返回默认值
func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	return value
}

// GetEnvNumeric 获取数值型环境变量，解析失败时返回默认值
func GetEnvNumeric(key string, defaultValue int) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return float64(defaultValue)
	}
	returnValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return float64(defaultValue)
	}

	return returnValue
}

// GetEnvBool 获取布尔型环境变量，只接受 true/false
func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	if value == "true" || value == "false" {
		return value == "true"
	}

	return defaultValue
}
